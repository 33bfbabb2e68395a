package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice lifecycle states.
// Transitions: Draft → Generated (document created) → Paid.
const (
	StatusDraft     = "Draft"
	StatusGenerated = "Generated"
	StatusPaid      = "Paid"
)

// Recurring frequency values. FrequencyNone disables the recurring schedule:
// downstream consumers ignore StartDate/EndDate/AutoSend when it is set.
const (
	FrequencyNone      = "None"
	FrequencyWeekly    = "Weekly"
	FrequencyBiWeekly  = "Bi-Weekly"
	FrequencyMonthly   = "Monthly"
	FrequencyQuarterly = "Quarterly"
	FrequencyYearly    = "Yearly"
)

// Company is the issuing party shown in the invoice header.
type Company struct {
	Name    string  `gorm:"type:varchar(200)" json:"name"`
	LogoURL *string `gorm:"type:varchar(500)" json:"logoUrl"`
}

// Customer is the billed party. All fields are free text.
type Customer struct {
	Name    string `gorm:"type:varchar(200)" json:"name"`
	Email   string `gorm:"type:varchar(200)" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Address string `gorm:"type:varchar(500)" json:"address"`
}

// JobDetails holds the single billable job of an invoice.
// Dates are ISO calendar dates ("2006-01-02"), no time component.
type JobDetails struct {
	Type        string          `gorm:"type:varchar(100)" json:"type"`
	Description string          `gorm:"type:text" json:"description"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0" json:"taxRate"`
	DueDate     string          `gorm:"type:varchar(10)" json:"dueDate"`
}

// RecurringOptions configures the auto-send schedule of an invoice.
type RecurringOptions struct {
	Frequency string  `gorm:"type:varchar(20);not null;default:'None'" json:"frequency"`
	StartDate string  `gorm:"type:varchar(10)" json:"startDate"`
	EndDate   *string `gorm:"type:varchar(10)" json:"endDate,omitempty"`
	AutoSend  bool    `gorm:"not null;default:false" json:"autoSend"`
}

// Invoice is the root record of the system.
// DocID/DocURL are written once by the generation flow; financial fields
// become immutable after the first successful generation.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID       string    `gorm:"type:varchar(128);index;not null"`
	InvoiceNumber string    `gorm:"type:varchar(30);not null"`
	IssueDate     string    `gorm:"type:varchar(10);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Draft'"`

	Company   Company          `gorm:"embedded;embeddedPrefix:company_"`
	Customer  Customer         `gorm:"embedded;embeddedPrefix:customer_"`
	Job       JobDetails       `gorm:"embedded;embeddedPrefix:job_"`
	Recurring RecurringOptions `gorm:"embedded;embeddedPrefix:recurring_"`

	// External document reference, set by the generation flow.
	DocID  *string `gorm:"type:varchar(100);column:doc_id"`
	DocURL *string `gorm:"type:varchar(500);column:doc_url"`

	// Auto-send bookkeeping — used by the recurring cron, never shown to users.
	NextSendAt *time.Time `gorm:"index;column:next_send_at"`
	LastSentAt *time.Time `gorm:"column:last_sent_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether the invoice's financial fields may still change.
func (i *Invoice) Locked() bool {
	return i.Status != StatusDraft
}
