package services

import (
	"database/sql"
	"errors"

	"aquaroom/internal/domain"
	"aquaroom/internal/repos"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService struct {
	Customers *repos.CustomerRepo
}

func NewCustomerService(customers *repos.CustomerRepo) *CustomerService {
	return &CustomerService{Customers: customers}
}

func (s *CustomerService) List(p repos.ListParams) ([]domain.Customer, int, error) {
	return s.Customers.List(p)
}

// CustomerDetail combines the customer row with order aggregates.
type CustomerDetail struct {
	domain.Customer
	Totals repos.CustomerOrderTotals `json:"totals"`
}

func (s *CustomerService) Get(id string) (CustomerDetail, error) {
	c, err := s.Customers.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CustomerDetail{}, ErrCustomerNotFound
		}
		return CustomerDetail{}, err
	}
	totals, err := s.Customers.OrderTotals(c.Email)
	if err != nil {
		return CustomerDetail{}, err
	}
	return CustomerDetail{Customer: c, Totals: totals}, nil
}

func (s *CustomerService) SetActive(id string, active bool) error {
	err := s.Customers.SetActive(id, active)
	if errors.Is(err, repos.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}
