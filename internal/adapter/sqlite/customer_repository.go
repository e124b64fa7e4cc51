package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: CustomerRepository implements domain.CustomerRepository.
var _ domain.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository implements domain.CustomerRepository using SQLite.
type CustomerRepository struct {
	store *Store
}

const customerColumns = `id, tour_id, first_name, last_name, date_of_birth, gender,
	email, mobile, address, city, state, pincode, aadhaar_number, pan_number,
	emergency_contact_name, emergency_contact_number, special_requirements,
	payment_status, amount_paid, payment_method, created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, c domain.Customer) error {
	_, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TourID, c.FirstName, c.LastName, c.DateOfBirth.Format(dateFormat), c.Gender,
		c.Email, c.Mobile, c.Address, c.City, c.State, c.Pincode, c.AadhaarNumber, c.PANNumber,
		c.EmergencyContactName, c.EmergencyContactNumber, c.SpecialRequirements,
		string(c.PaymentStatus), c.AmountPaid, c.PaymentMethod,
		c.CreatedAt.Format(timeFormat),
		c.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.ReferenceError{TourID: c.TourID}
		}
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	c, err := scanCustomer(r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return c, err
}

func (r *CustomerRepository) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	var args []any

	if filter.TourID != "" {
		query += ` WHERE tour_id = ?`
		args = append(args, filter.TourID)
	}

	query += ` ORDER BY created_at, id`

	rows, err := r.store.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// Update writes every field except the tour reference and creation time.
func (r *CustomerRepository) Update(ctx context.Context, c domain.Customer) error {
	result, err := r.store.conn(ctx).ExecContext(ctx,
		`UPDATE customers SET first_name = ?, last_name = ?, date_of_birth = ?, gender = ?,
		     email = ?, mobile = ?, address = ?, city = ?, state = ?, pincode = ?,
		     aadhaar_number = ?, pan_number = ?, emergency_contact_name = ?,
		     emergency_contact_number = ?, special_requirements = ?,
		     payment_status = ?, amount_paid = ?, payment_method = ?, updated_at = ?
		 WHERE id = ?`,
		c.FirstName, c.LastName, c.DateOfBirth.Format(dateFormat), c.Gender,
		c.Email, c.Mobile, c.Address, c.City, c.State, c.Pincode,
		c.AadhaarNumber, c.PANNumber, c.EmergencyContactName,
		c.EmergencyContactNumber, c.SpecialRequirements,
		string(c.PaymentStatus), c.AmountPaid, c.PaymentMethod,
		time.Now().UTC().Format(timeFormat), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.store.conn(ctx).ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row scanner) (domain.Customer, error) {
	var c domain.Customer
	var dob, status, createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.TourID, &c.FirstName, &c.LastName, &dob, &c.Gender,
		&c.Email, &c.Mobile, &c.Address, &c.City, &c.State, &c.Pincode,
		&c.AadhaarNumber, &c.PANNumber,
		&c.EmergencyContactName, &c.EmergencyContactNumber, &c.SpecialRequirements,
		&status, &c.AmountPaid, &c.PaymentMethod, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, err
		}
		return domain.Customer{}, fmt.Errorf("scanning customer: %w", err)
	}

	c.PaymentStatus = domain.PaymentStatus(status)
	c.DateOfBirth, _ = time.Parse(dateFormat, dob)
	c.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	c.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return c, nil
}
