package medicalexpense

import (
	"context"
	"database/sql"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/finance/common"
)

// sqliteRepository provides SQLite access to medical expense data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new medical expense repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const medicalExpenseColumns = `medical_expense_id, transaction_id, provider_id, family_member_id,
	service_date, service_description, procedure_code, diagnosis_code,
	billed_amount, insurance_discount, insurance_paid, patient_responsibility,
	paid_date, is_out_of_network, claim_number, claim_status, active,
	date_added, date_updated`

func (r *sqliteRepository) Insert(ctx context.Context, m *MedicalExpense) (*MedicalExpense, error) {
	now := time.Now().UTC()
	m.DateAdded = now
	m.DateUpdated = now

	var paidDate sql.NullString
	if m.PaidDate != nil {
		paidDate = sql.NullString{String: common.FormatDate(*m.PaidDate), Valid: true}
	}

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO medical_expenses (transaction_id, provider_id, family_member_id,
			service_date, service_description, procedure_code, diagnosis_code,
			billed_amount, insurance_discount, insurance_paid, patient_responsibility,
			paid_date, is_out_of_network, claim_number, claim_status, active,
			date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullableID(m.TransactionID), nullableID(m.ProviderID), nullableID(m.FamilyMemberID),
		common.FormatDate(m.ServiceDate), m.ServiceDescription, m.ProcedureCode, m.DiagnosisCode,
		int64(m.BilledAmount), int64(m.InsuranceDiscount), int64(m.InsurancePaid),
		int64(m.PatientResponsibility), paidDate, m.IsOutOfNetwork,
		nullableClaimNumber(m.ClaimNumber), string(m.ClaimStatus), m.Active,
		now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	m.MedicalExpenseID = id
	return m, nil
}

func (r *sqliteRepository) FindByID(ctx context.Context, id int64) (*MedicalExpense, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+medicalExpenseColumns+` FROM medical_expenses WHERE medical_expense_id = ?
	`, id)

	m, err := scanMedicalExpense(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return m, nil
}

func (r *sqliteRepository) FindByTransactionID(ctx context.Context, transactionID int64) (*MedicalExpense, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+medicalExpenseColumns+` FROM medical_expenses WHERE transaction_id = ?
	`, transactionID)

	m, err := scanMedicalExpense(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return m, nil
}

func (r *sqliteRepository) FindByClaimStatus(ctx context.Context, status ClaimStatus) ([]*MedicalExpense, error) {
	return r.queryMedicalExpenses(ctx, `
		SELECT `+medicalExpenseColumns+` FROM medical_expenses
		WHERE claim_status = ? AND active = 1
		ORDER BY service_date DESC, medical_expense_id DESC
	`, string(status))
}

func (r *sqliteRepository) FindByServiceDateRange(ctx context.Context, start, end time.Time) ([]*MedicalExpense, error) {
	return r.queryMedicalExpenses(ctx, `
		SELECT `+medicalExpenseColumns+` FROM medical_expenses
		WHERE service_date >= ? AND service_date <= ? AND active = 1
		ORDER BY service_date DESC, medical_expense_id DESC
	`, common.FormatDate(start), common.FormatDate(end))
}

func (r *sqliteRepository) FindOpenClaims(ctx context.Context) ([]*MedicalExpense, error) {
	return r.queryMedicalExpenses(ctx, `
		SELECT `+medicalExpenseColumns+` FROM medical_expenses
		WHERE claim_status IN ('submitted', 'processing', 'approved') AND active = 1
		ORDER BY service_date DESC, medical_expense_id DESC
	`)
}

func (r *sqliteRepository) UpdateClaimStatus(ctx context.Context, id int64, status ClaimStatus) (*MedicalExpense, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE medical_expenses SET claim_status = ?, date_updated = ? WHERE medical_expense_id = ?
	`, string(status), now.Unix(), id)
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *sqliteRepository) UpdatePayment(ctx context.Context, id int64, paidDate time.Time, patientResponsibility common.Money) (*MedicalExpense, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE medical_expenses SET paid_date = ?, patient_responsibility = ?, date_updated = ?
		WHERE medical_expense_id = ?
	`, common.FormatDate(paidDate), int64(patientResponsibility), now.Unix(), id)
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM medical_expenses WHERE medical_expense_id = ?
	`, id)
	if err != nil {
		return sqlite.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return sqlite.MapError(err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) queryMedicalExpenses(ctx context.Context, query string, args ...any) ([]*MedicalExpense, error) {
	rows, err := r.store.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var expenses []*MedicalExpense
	for rows.Next() {
		m, err := scanMedicalExpense(rows)
		if err != nil {
			return nil, sqlite.MapError(err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return expenses, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// nullableClaimNumber stores absent claim numbers as NULL so the unique
// index only constrains real claims.
func nullableClaimNumber(claimNumber string) sql.NullString {
	return sql.NullString{String: claimNumber, Valid: claimNumber != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicalExpense(row rowScanner) (*MedicalExpense, error) {
	var m MedicalExpense
	var transactionID, providerID, familyMemberID sql.NullInt64
	var serviceDate string
	var paidDate, claimNumber sql.NullString
	var status string
	var added, updated int64

	if err := row.Scan(&m.MedicalExpenseID, &transactionID, &providerID, &familyMemberID,
		&serviceDate, &m.ServiceDescription, &m.ProcedureCode, &m.DiagnosisCode,
		&m.BilledAmount, &m.InsuranceDiscount, &m.InsurancePaid, &m.PatientResponsibility,
		&paidDate, &m.IsOutOfNetwork, &claimNumber, &status, &m.Active,
		&added, &updated); err != nil {
		return nil, err
	}

	date, err := common.ParseDate(serviceDate)
	if err != nil {
		return nil, err
	}
	m.ServiceDate = date

	if transactionID.Valid {
		m.TransactionID = &transactionID.Int64
	}
	if providerID.Valid {
		m.ProviderID = &providerID.Int64
	}
	if familyMemberID.Valid {
		m.FamilyMemberID = &familyMemberID.Int64
	}
	if paidDate.Valid {
		paid, err := common.ParseDate(paidDate.String)
		if err != nil {
			return nil, err
		}
		m.PaidDate = &paid
	}

	m.ClaimNumber = claimNumber.String
	m.ClaimStatus = ClaimStatus(status)
	m.DateAdded = time.Unix(added, 0).UTC()
	m.DateUpdated = time.Unix(updated, 0).UTC()
	return &m, nil
}
