package models

import (
	"context"
	"strings"

	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// BankAccount is one bank relationship on a party master record.
// OpeningBalance stays a string; it is display data carried through from
// the registration documents, not an amount the system computes with.
type BankAccount struct {
	ID             string `json:"id"`
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	IfscCode       string `json:"ifsc_code"`
	AccountType    string `json:"account_type"`
	OpeningBalance string `json:"opening_balance"`
}

// PartyDetails is the party master record: statutory identifiers, contact
// info, bank accounts and the credential pairs for the portals the audit
// team logs into on the party's behalf.
type PartyDetails struct {
	ID                string         `json:"id"`
	PartyName         string         `json:"party_name"`
	CertificateNumber string         `json:"certificate_number"`
	Address           string         `json:"address"`
	PanNumber         string         `json:"pan_number"`
	GstNumber         string         `json:"gst_number"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	BankAccounts      []*BankAccount `json:"bank_accounts"`
	ErpId             string         `json:"erp_id"`
	ErpPassword       string         `json:"erp_password"`
	CmrId             string         `json:"cmr_id"`
	CmrPassword       string         `json:"cmr_password"`
	PdfId             string         `json:"pdf_id"`
	PdfPassword       string         `json:"pdf_password"`
	CscId             string         `json:"csc_id"`
	CscPassword       string         `json:"csc_password"`
}

func (p PartyDetails) GetKey() string { return p.ID }

type NewPartyDetails struct {
	PartyName         string         `json:"party_name"`
	CertificateNumber string         `json:"certificate_number"`
	Address           string         `json:"address"`
	PanNumber         string         `json:"pan_number"`
	GstNumber         string         `json:"gst_number"`
	Email             string         `json:"email" binding:"omitempty,email"`
	Phone             string         `json:"phone"`
	BankAccounts      []*BankAccount `json:"bank_accounts"`
	ErpId             string         `json:"erp_id"`
	ErpPassword       string         `json:"erp_password"`
	CmrId             string         `json:"cmr_id"`
	CmrPassword       string         `json:"cmr_password"`
	PdfId             string         `json:"pdf_id"`
	PdfPassword       string         `json:"pdf_password"`
	CscId             string         `json:"csc_id"`
	CscPassword       string         `json:"csc_password"`
}

// Validate checks contact fields only when present; party masters are
// routinely created before contact info is known.
func (input *NewPartyDetails) Validate() error {
	if email := strings.TrimSpace(input.Email); email != "" && !utils.IsValidEmail(email) {
		return utils.ErrorInvalidEmail
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		if err := utils.ValidatePhoneNumber(phone, utils.CountryCode); err != nil {
			return err
		}
	}
	return nil
}

func (input *NewPartyDetails) apply(rec *PartyDetails) {
	rec.PartyName = strings.TrimSpace(input.PartyName)
	rec.CertificateNumber = strings.TrimSpace(input.CertificateNumber)
	rec.Address = strings.TrimSpace(input.Address)
	rec.PanNumber = strings.TrimSpace(input.PanNumber)
	rec.GstNumber = strings.TrimSpace(input.GstNumber)
	rec.Email = strings.TrimSpace(input.Email)
	rec.Phone = strings.TrimSpace(input.Phone)
	rec.ErpId = input.ErpId
	rec.ErpPassword = input.ErpPassword
	rec.CmrId = input.CmrId
	rec.CmrPassword = input.CmrPassword
	rec.PdfId = input.PdfId
	rec.PdfPassword = input.PdfPassword
	rec.CscId = input.CscId
	rec.CscPassword = input.CscPassword

	accounts := make([]*BankAccount, 0, len(input.BankAccounts))
	for _, account := range input.BankAccounts {
		if account == nil {
			continue
		}
		copied := *account
		if copied.ID == "" {
			copied.ID = uuid.NewString()
		}
		accounts = append(accounts, &copied)
	}
	rec.BankAccounts = accounts
}

func seedPartyDetails() []*PartyDetails {
	return []*PartyDetails{
		{
			ID:                "1",
			PartyName:         "ABC Enterprises",
			CertificateNumber: "CERT-2024-001",
			Address:           "12 MG Road, Pune",
			PanNumber:         "ABCDE1234F",
			GstNumber:         "27ABCDE1234F1Z5",
			Email:             "accounts@abcenterprises.example",
			Phone:             "+919876543210",
			BankAccounts: []*BankAccount{
				{
					ID:             "1",
					BankName:       "State Bank of India",
					AccountNumber:  "30123456789",
					IfscCode:       "SBIN0001234",
					AccountType:    "Current",
					OpeningBalance: "50000.00",
				},
			},
			ErpId:       "abc_erp",
			ErpPassword: "changeme",
		},
		{
			ID:                "2",
			PartyName:         "XYZ Suppliers",
			CertificateNumber: "CERT-2024-002",
			Address:           "4 Station Road, Nagpur",
			PanNumber:         "XYZAB5678K",
			GstNumber:         "27XYZAB5678K1Z2",
			Email:             "billing@xyzsuppliers.example",
			Phone:             "+919812345678",
			BankAccounts:      []*BankAccount{},
		},
		{
			ID:                "3",
			PartyName:         "Global Industries",
			CertificateNumber: "CERT-2023-114",
			Address:           "88 Industrial Estate, Nashik",
			PanNumber:         "GLOBL9012P",
			GstNumber:         "",
			Email:             "",
			Phone:             "",
			BankAccounts:      []*BankAccount{},
		},
	}
}

var partyDetailsStore = NewCollectionStore[PartyDetails](StoreKeyPartyDetails, seedPartyDetails)

func ListPartyDetails(ctx context.Context) []*PartyDetails {
	return partyDetailsStore.List(ctx)
}

func GetPartyDetails(ctx context.Context, id string) (*PartyDetails, error) {
	return partyDetailsStore.Get(ctx, id)
}

func CreatePartyDetails(ctx context.Context, input *NewPartyDetails) (*PartyDetails, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	rec := &PartyDetails{ID: uuid.NewString()}
	input.apply(rec)
	partyDetailsStore.Add(ctx, rec)
	return rec, nil
}

func UpdatePartyDetails(ctx context.Context, id string, input *NewPartyDetails) (*PartyDetails, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	existing, err := partyDetailsStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	input.apply(&updated)
	if err := partyDetailsStore.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func DeletePartyDetails(ctx context.Context, id string) (*PartyDetails, error) {
	return partyDetailsStore.Remove(ctx, id)
}

// FetchPartyEmails resolves emails for summary rows by exact party name
// match against the party master. Every summary row with a requested name
// gets an entry, duplicates included; a nil value records the lookup
// happened but no address exists.
func FetchPartyEmails(ctx context.Context, partyNames []string) map[string]*string {
	summaries := partySummaryStore.List(ctx)
	details := partyDetailsStore.List(ctx)

	requested := make(map[string]bool, len(partyNames))
	for _, name := range partyNames {
		requested[name] = true
	}

	emailByName := make(map[string]string, len(details))
	for _, d := range details {
		if d.PartyName != "" {
			emailByName[d.PartyName] = d.Email
		}
	}

	out := make(map[string]*string)
	for _, summary := range summaries {
		if !requested[summary.PartyName] {
			continue
		}
		if email, ok := emailByName[summary.PartyName]; ok && email != "" {
			out[summary.ID] = &email
		} else {
			out[summary.ID] = nil
		}
	}
	return out
}

// The flat 20-column layout: one bank account inline. Parties with more
// accounts keep them in the record; only the first travels through Excel.
var partyDetailsSheet = SheetSpec[PartyDetails]{
	SheetName: "Party Details",
	Filename:  "party_details.xlsx",
	Headers: []string{
		"Party Name",
		"Certificate Number",
		"Address",
		"PAN Number",
		"GST Number",
		"Email",
		"Phone",
		"Bank Name",
		"Account Number",
		"IFSC Code",
		"Account Type",
		"Opening Balance",
		"ERP ID",
		"ERP Password",
		"CMR ID",
		"CMR Password",
		"PDF ID",
		"PDF Password",
		"CSC ID",
		"CSC Password",
	},
	FromRow: partyDetailsFromRow,
	ToRow: func(rec *PartyDetails) []interface{} {
		var bank BankAccount
		if len(rec.BankAccounts) > 0 {
			bank = *rec.BankAccounts[0]
		}
		return []interface{}{
			rec.PartyName,
			rec.CertificateNumber,
			rec.Address,
			rec.PanNumber,
			rec.GstNumber,
			rec.Email,
			rec.Phone,
			bank.BankName,
			bank.AccountNumber,
			bank.IfscCode,
			bank.AccountType,
			bank.OpeningBalance,
			rec.ErpId,
			rec.ErpPassword,
			rec.CmrId,
			rec.CmrPassword,
			rec.PdfId,
			rec.PdfPassword,
			rec.CscId,
			rec.CscPassword,
		}
	},
}

func partyDetailsFromRow(row []string, id string) (*PartyDetails, bool) {
	name := strings.TrimSpace(cellAt(row, 0))
	if name == "" {
		return nil, false
	}

	rec := &PartyDetails{
		ID:                id,
		PartyName:         name,
		CertificateNumber: strings.TrimSpace(cellAt(row, 1)),
		Address:           strings.TrimSpace(cellAt(row, 2)),
		PanNumber:         strings.TrimSpace(cellAt(row, 3)),
		GstNumber:         strings.TrimSpace(cellAt(row, 4)),
		Email:             strings.TrimSpace(cellAt(row, 5)),
		Phone:             strings.TrimSpace(cellAt(row, 6)),
		BankAccounts:      []*BankAccount{},
		ErpId:             strings.TrimSpace(cellAt(row, 12)),
		ErpPassword:       strings.TrimSpace(cellAt(row, 13)),
		CmrId:             strings.TrimSpace(cellAt(row, 14)),
		CmrPassword:       strings.TrimSpace(cellAt(row, 15)),
		PdfId:             strings.TrimSpace(cellAt(row, 16)),
		PdfPassword:       strings.TrimSpace(cellAt(row, 17)),
		CscId:             strings.TrimSpace(cellAt(row, 18)),
		CscPassword:       strings.TrimSpace(cellAt(row, 19)),
	}

	bank := BankAccount{
		BankName:       strings.TrimSpace(cellAt(row, 7)),
		AccountNumber:  strings.TrimSpace(cellAt(row, 8)),
		IfscCode:       strings.TrimSpace(cellAt(row, 9)),
		AccountType:    strings.TrimSpace(cellAt(row, 10)),
		OpeningBalance: strings.TrimSpace(cellAt(row, 11)),
	}
	if bank.BankName != "" || bank.AccountNumber != "" {
		bank.ID = uuid.NewString()
		rec.BankAccounts = append(rec.BankAccounts, &bank)
	}
	return rec, true
}

func ImportPartyDetails(ctx context.Context, f *excelize.File) (int, error) {
	records, err := ImportWorkbook(f, partyDetailsSheet)
	if err != nil {
		return 0, err
	}
	partyDetailsStore.Replace(ctx, records)
	return len(records), nil
}

func ExportPartyDetails(ctx context.Context) (*excelize.File, string, error) {
	f, err := ExportWorkbook(partyDetailsStore.List(ctx), partyDetailsSheet)
	if err != nil {
		return nil, "", err
	}
	return f, partyDetailsSheet.Filename, nil
}
