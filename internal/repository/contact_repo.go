package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// ContactRepository 联系人数据访问接口
type ContactRepository interface {
	List(ctx context.Context) ([]model.Contact, error)
	ListWithPartner(ctx context.Context) ([]model.ContactView, error)
	Upsert(ctx context.Context, contact *model.Contact) error
}

type contactRepo struct {
	db *gorm.DB
}

// NewContactRepo 创建 ContactRepository 实例
func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) List(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Order("ContactID ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepo) ListWithPartner(ctx context.Context) ([]model.ContactView, error) {
	var rows []model.ContactView
	err := r.db.WithContext(ctx).
		Table("Contact c").
		Select("c.*, p.Name AS PartnerName").
		Joins("LEFT JOIN Partner p ON c.PartnerID = p.PartnerID").
		Order("c.Name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *contactRepo) Upsert(ctx context.Context, contact *model.Contact) error {
	stored, err := upsertBySalesforceID(ctx, r.db, contact, model.StringValue(contact.SalesforceID),
		[]string{"Name", "Email", "Phone", "Role", "PartnerID"})
	if err != nil {
		return err
	}
	contact.ContactID = stored.ContactID
	return nil
}
