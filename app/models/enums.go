package models

// PaymentMethod defines how a payment was made. The string values are the
// French labels the frontend and the exported CSVs use.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Espèces"
	MethodMobileMoney  PaymentMethod = "Mobile Money"
	MethodBankTransfer PaymentMethod = "Virement Bancaire"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodMobileMoney, MethodBankTransfer:
		return true
	}
	return false
}

// PaymentType defines what a payment is for.
type PaymentType string

const (
	TypeEnrollment PaymentType = "Inscription"
	TypeTuition    PaymentType = "Scolarité"
	TypeCafeteria  PaymentType = "Cantine"
	TypeTransport  PaymentType = "Transport"
	TypeSupplies   PaymentType = "Fournitures"
	TypeOther      PaymentType = "Autre"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case TypeEnrollment, TypeTuition, TypeCafeteria, TypeTransport, TypeSupplies, TypeOther:
		return true
	}
	return false
}

// PaymentStatus defines the lifecycle state of a payment record.
// Only pending payments may transition, to confirmed or cancelled.
type PaymentStatus string

const (
	PaymentConfirmed PaymentStatus = "Confirmé"
	PaymentPending   PaymentStatus = "En attente"
	PaymentCancelled PaymentStatus = "Annulé"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentConfirmed, PaymentPending, PaymentCancelled:
		return true
	}
	return false
}

// BalanceStatus is the derived payment standing of a student for the year.
type BalanceStatus string

const (
	BalanceUpToDate BalanceStatus = "À jour"
	BalancePartial  BalanceStatus = "Partiel"
	BalanceLate     BalanceStatus = "En retard"
)
