// Package sessionrepo persists checkout sessions. A session row holds the
// draft and submission state; its cart lines live in session_lines, ordered by
// position.
package sessionrepo

import (
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/shipping"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionDTO is one row of the sessions table.
type SessionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Draft       DraftDTO  `gorm:"embedded;embeddedPrefix:draft_"`
	Status      int       `gorm:"type:smallint;not null"`
	LastInvoice string    `gorm:"type:varchar(64)"`
	LastError   string    `gorm:"type:text"`
	Version     int       `gorm:"type:int;not null"`
	TouchedAt   time.Time `gorm:"not null;index"`
	Lines       []LineDTO `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (SessionDTO) TableName() string {
	return "sessions"
}

// DraftDTO is embedded in the sessions row.
type DraftDTO struct {
	FullName      string `gorm:"type:varchar(100)"`
	Phone         string `gorm:"type:varchar(20)"`
	Division      string `gorm:"type:varchar(64)"`
	District      string `gorm:"type:varchar(64)"`
	SubDistrict   string `gorm:"type:varchar(64)"`
	StreetAddress string `gorm:"type:varchar(250)"`
	PostalCode    string `gorm:"type:varchar(10)"`
	ShippingTier  string `gorm:"type:varchar(32)"`
	PaymentMethod string `gorm:"type:varchar(32)"`
	Notes         string `gorm:"type:text"`
}

// LineDTO is one cart line of a session.
type LineDTO struct {
	SessionID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID string          `gorm:"type:varchar(64);not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	ImageRef  string          `gorm:"type:varchar(512)"`
}

func (LineDTO) TableName() string {
	return "session_lines"
}

func fromDomain(s *checkout.Session) SessionDTO {
	id := s.ID().Bytes()
	draft := s.Draft()
	addr := draft.Address()

	lines := make([]LineDTO, 0, s.Cart().Len())
	for i, l := range s.Lines() {
		lines = append(lines, LineDTO{
			SessionID: id,
			Position:  i,
			ProductID: l.ID(),
			Name:      l.Name(),
			UnitPrice: l.UnitPrice().Decimal(),
			Quantity:  l.Quantity(),
			ImageRef:  l.ImageRef(),
		})
	}

	return SessionDTO{
		ID: id,
		Draft: DraftDTO{
			FullName:      draft.Contact().FullName(),
			Phone:         draft.Contact().Phone(),
			Division:      addr.Division(),
			District:      addr.District(),
			SubDistrict:   addr.SubDistrict(),
			StreetAddress: addr.StreetAddress(),
			PostalCode:    addr.PostalCode(),
			ShippingTier:  draft.ShippingTier().Code(),
			PaymentMethod: draft.PaymentMethod().Code(),
			Notes:         draft.Notes(),
		},
		Status:      int(s.Status()),
		LastInvoice: s.LastInvoice(),
		LastError:   s.LastError(),
		Version:     s.Version(),
		TouchedAt:   s.UpdatedAt(),
		Lines:       lines,
	}
}

func toDomain(dto SessionDTO) (*checkout.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tier, err := shipping.ParseTier(dto.Draft.ShippingTier)
	if err != nil {
		return nil, err
	}
	method, err := payment.ParseMethod(dto.Draft.PaymentMethod)
	if err != nil {
		return nil, err
	}

	draft := checkout.RestoreDraft(
		checkout.NewContactInfo(dto.Draft.FullName, dto.Draft.Phone),
		address.RestoreSelection(
			dto.Draft.Division,
			dto.Draft.District,
			dto.Draft.SubDistrict,
			dto.Draft.StreetAddress,
			dto.Draft.PostalCode,
		),
		tier,
		method,
		dto.Draft.Notes,
	)

	lines := make([]*cart.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}
	c, err := cart.NewCart(lines...)
	if err != nil {
		return nil, err
	}

	return checkout.RestoreSession(
		id,
		draft,
		c,
		checkout.SubmissionStatus(dto.Status),
		dto.LastInvoice,
		dto.LastError,
		dto.Version,
		dto.TouchedAt.UTC(),
	)
}

func lineToDomain(dto LineDTO) (*cart.Line, error) {
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return cart.NewLine(dto.ProductID, dto.Name, price, dto.Quantity, dto.ImageRef)
}
