// childcare-crm/models/family.go

package models

import "gorm.io/gorm"

// Accepted payment methods, shared by Family.PaymentPreference and
// Payment.Method.
const (
	MethodEFT           = "EFT"
	MethodCreditCard    = "Credit Card"
	MethodCash          = "Cash"
	MethodCheque        = "Cheque"
	MethodDirectPayment = "Direct Payment"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodEFT, MethodCreditCard, MethodCash, MethodCheque, MethodDirectPayment:
		return true
	}
	return false
}

// Family is the billing and contact unit. Children, payments, invoices and
// deposits all hang off it.
type Family struct {
	gorm.Model
	Parent1Name       string `json:"parent1Name" gorm:"not null"`
	Parent1Phone      string `json:"parent1Phone"`
	Parent1Email      string `json:"parent1Email"`
	Parent2Name       string `json:"parent2Name"`
	Parent2Phone      string `json:"parent2Phone"`
	Parent2Email      string `json:"parent2Email"`
	Address           string `json:"address"`
	PaymentPreference string `json:"paymentPreference" gorm:"size:20"`
	Notes             string `json:"notes"`

	Children []Child `gorm:"foreignKey:FamilyID" json:"children,omitempty"`
}
