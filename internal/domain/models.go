package domain

import (
	"time"
)

// CustomerPartitionKey is the partition every customer record is written to.
const CustomerPartitionKey = "customer"

// Customer is a retail customer record. PartitionKey and RowKey form its identity
// in the record store and never change after creation.
type Customer struct {
	PartitionKey string    `gorm:"primaryKey;type:varchar(64)" json:"partitionKey"`
	RowKey       string    `gorm:"primaryKey;type:varchar(64)" json:"rowKey"`
	CustomerID   string    `gorm:"type:varchar(64);not null;index" json:"customerId"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"lastName"`
	Email        string    `gorm:"type:varchar(255);not null" json:"email"`
	PhoneNumber  string    `gorm:"type:varchar(50);not null" json:"phoneNumber"`
	PhotoURL     string    `gorm:"type:text" json:"photoUrl,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// HasPhoto reports whether a photo is attached to the customer
func (c *Customer) HasPhoto() bool {
	return c.PhotoURL != ""
}

// LogMessage is a read-only view of an entry in the audit queue
type LogMessage struct {
	MessageID     string    `json:"messageId"`
	InsertionTime time.Time `json:"insertionTime"`
	MessageText   string    `json:"messageText"`
}

// AuditAction names the customer mutation an audit message describes
type AuditAction string

const (
	// AuditActionCustomerCreated keeps the wording the existing log consumers expect.
	AuditActionCustomerCreated AuditAction = "New Product Added"
	AuditActionCustomerUpdated AuditAction = "Customer Updated"
	AuditActionCustomerDeleted AuditAction = "Customer Deleted"
)

// AuditMessage is the JSON payload written to the audit queue
type AuditMessage struct {
	Action    AuditAction  `json:"Action"`
	TimeStamp time.Time    `json:"TimeStamp"`
	Details   AuditDetails `json:"Details"`
}

// AuditDetails is the customer snapshot carried by an audit message
type AuditDetails struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	Email        string `json:"Email"`
	PhoneNumber  string `json:"PhoneNumber"`
}

// NewAuditDetails snapshots the audited fields of a customer
func NewAuditDetails(c *Customer) AuditDetails {
	return AuditDetails{
		PartitionKey: c.PartitionKey,
		RowKey:       c.RowKey,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
	}
}
