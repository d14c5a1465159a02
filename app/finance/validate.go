package finance

import (
	"github.com/go-playground/validator/v10"

	"github.com/PORTABLEA02/primaire2/app/models"
)

// PaymentRequest is the payload of the payment submission flow, before it is
// turned into a persisted Payment record.
type PaymentRequest struct {
	StudentID         string               `json:"student_id" validate:"required,uuid"`
	Amount            int64                `json:"amount" validate:"required,gt=0"`
	Method            models.PaymentMethod `json:"payment_method" validate:"required"`
	Type              models.PaymentType   `json:"payment_type" validate:"required"`
	PaymentDate       string               `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PeriodDescription string               `json:"period_description,omitempty"`
	ReferenceNumber   string               `json:"reference_number,omitempty"`
	MobileNumber      string               `json:"mobile_number,omitempty"`
	BankDetails       string               `json:"bank_details,omitempty"`
	Notes             string               `json:"notes,omitempty"`
}

var validate = validator.New()

// ValidatePayment runs all local precondition checks on a payment submission
// and returns the failures keyed by field, empty when the request is valid.
// These checks run before any database call; a failing submission never
// reaches the ledger.
func ValidatePayment(req PaymentRequest) map[string]string {
	errs := make(map[string]string)

	if err := validate.Struct(req); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Field() {
			case "StudentID":
				errs["student_id"] = "Veuillez sélectionner un élève"
			case "Amount":
				errs["amount"] = "Le montant doit être supérieur à 0"
			case "Method":
				errs["payment_method"] = "Méthode de paiement requise"
			case "Type":
				errs["payment_type"] = "Type de paiement requis"
			case "PaymentDate":
				errs["payment_date"] = "Date de paiement invalide"
			}
		}
	}

	if req.Method != "" && !req.Method.Valid() {
		errs["payment_method"] = "Méthode de paiement inconnue"
	}
	if req.Type != "" && !req.Type.Valid() {
		errs["payment_type"] = "Type de paiement inconnu"
	}

	// Method-specific required fields, same rules as the payment form.
	if req.Method == models.MethodMobileMoney && req.MobileNumber == "" {
		errs["mobile_number"] = "Numéro de téléphone requis pour Mobile Money"
	}
	if req.Method == models.MethodBankTransfer && req.BankDetails == "" {
		errs["bank_details"] = "Détails bancaires requis pour le virement"
	}

	return errs
}
