package company

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type FakeRepository struct {
	Companies   []Company
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Companies: make([]Company, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (c Company, err error) {
	if r.ReturnError {
		return c, fmt.Errorf("could not create company %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, c := range r.Companies {
		if c.Name == input.Name {
			return c, ErrCompanyNameAlreadyExists
		}
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	c = Company{ID: maxID + 1, Name: input.Name, CreatedAt: input.CreatedAt}
	r.Companies = append(r.Companies, c)
	return c, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (c Company, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, c := range r.Companies {
		if c.ID == id {
			return c, nil
		}
	}
	return c, ErrCompanyDoesNotExist
}

func (r *FakeRepository) List(ctx context.Context) ([]Company, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	companies := make([]Company, len(r.Companies))
	copy(companies, r.Companies)
	sort.Slice(companies, func(i, j int) bool { return companies[i].Name < companies[j].Name })
	return companies, nil
}

func (r *FakeRepository) Exists(ctx context.Context, id ID) (bool, error) {
	if r.ReturnError {
		return false, fmt.Errorf("could not check company existence")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, c := range r.Companies {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (c Company, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Companies {
		if existing.Name == input.Name && existing.ID != input.ID {
			return c, ErrCompanyNameAlreadyExists
		}
	}
	for ix, existing := range r.Companies {
		if existing.ID == input.ID {
			r.Companies[ix].Name = input.Name
			return r.Companies[ix], nil
		}
	}
	return c, ErrCompanyDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, c := range r.Companies {
		if c.ID == id {
			r.Companies = append(r.Companies[:ix], r.Companies[ix+1:]...)
			return nil
		}
	}
	return ErrCompanyDoesNotExist
}
