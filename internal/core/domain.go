package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Sale types recognized by the commission calculator. Any other value
	// is stored as-is and earns zero commission.
	SaleTypeInstallmentBook = "Installment-book"
	SaleTypeCard            = "Card"
	SaleTypeInstantTransfer = "Instant-transfer"

	// Defaults applied when the corresponding form field is left empty.
	DefaultConsultationStatus = "Realizada"
	DefaultProcedureType      = "Cirurgia"
)

type (
	// Date is a calendar date. The time-of-day portion is always midnight UTC.
	Date struct {
		time.Time
	}

	// Money is a fixed-point amount with two fractional digits.
	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Name         string // login handle and display name, unique
		PasswordHash string
	}

	Sale struct {
		ID         int64
		OwnerID    int64
		ClientName string
		SaleDate   Date
		SaleType   string
		Total      Money
		Commission Money
	}

	Collection struct {
		ID              int64
		OwnerID         int64
		ClientName      string
		NegotiationDate Date
		Negotiated      Money
		Commission      Money
	}

	Consultation struct {
		ID               int64
		OwnerID          int64
		ClientName       string
		ConsultationDate Date
		Status           string
		Commission       Money
	}

	Procedure struct {
		ID            int64
		OwnerID       int64
		ClientName    string
		ProcedureDate Date
		ProcedureType string
		Commission    Money
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyClient    = errors.New("empty client name")
	ErrEmptyName      = errors.New("empty user name")
	ErrEmptyPassword  = errors.New("empty password")
	ErrInvalidDate    = errors.New("invalid date")
	ErrMissingOwner   = errors.New("record has no owner")
	ErrNotOwner       = errors.New("record belongs to another user")
	ErrUserNotFound   = errors.New("user not found")
	ErrRecordNotFound = errors.New("record not found")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func validClient(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return ErrEmptyClient
	}
	if len(name) > 150 {
		return errors.New("client name too long (max 150 characters)")
	}
	return nil
}

func (u User) Validate() error {
	if len(strings.TrimSpace(u.Name)) == 0 {
		return ErrEmptyName
	}
	if len(u.Name) > 150 {
		return errors.New("user name too long (max 150 characters)")
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}

func (s Sale) Validate() error {
	if s.OwnerID == 0 {
		return ErrMissingOwner
	}
	if err := validClient(s.ClientName); err != nil {
		return err
	}
	if err := s.SaleDate.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(s.SaleType)) == 0 {
		return errors.New("empty sale type")
	}
	return s.Total.Validate()
}

func (c Collection) Validate() error {
	if c.OwnerID == 0 {
		return ErrMissingOwner
	}
	if err := validClient(c.ClientName); err != nil {
		return err
	}
	if err := c.NegotiationDate.Validate(); err != nil {
		return err
	}
	return c.Negotiated.Validate()
}

func (c Consultation) Validate() error {
	if c.OwnerID == 0 {
		return ErrMissingOwner
	}
	if err := validClient(c.ClientName); err != nil {
		return err
	}
	return c.ConsultationDate.Validate()
}

func (p Procedure) Validate() error {
	if p.OwnerID == 0 {
		return ErrMissingOwner
	}
	if err := validClient(p.ClientName); err != nil {
		return err
	}
	return p.ProcedureDate.Validate()
}
