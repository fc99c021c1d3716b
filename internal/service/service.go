// Package service composes authentication, policy, the query engine
// and the repository into the exposed operations. Every failure comes
// back tagged with an apperror code; only backend faults carry a cause.
package service

import (
	"context"
	"errors"
	"time"

	"employees/internal/apperror"
	"employees/internal/auth"
	"employees/internal/authz"
	"employees/internal/employee"
)

type Service struct {
	repo   employee.Repository
	issuer string
	key    string
	ttl    time.Duration
}

// New builds the operation layer over any conforming repository.
func New(repo employee.Repository, issuer, signingKey string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, issuer: issuer, key: signingKey, ttl: tokenTTL}
}

// LoginResult is the credential plus redacted user view returned by Login.
type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      employee.AuthUser `json:"user"`
}

func deny(d authz.Decision) error {
	switch d.Reason {
	case authz.ReasonUnauthenticated:
		return apperror.New(apperror.CodeUnauthenticated, "authentication required")
	case authz.ReasonNotSelf:
		return apperror.New(apperror.CodeForbidden, "not allowed for this employee")
	default:
		return apperror.New(apperror.CodeForbidden, "admin privileges required")
	}
}

func backend(err error) error {
	return apperror.Wrap(apperror.CodeUnavailable, "employee store unavailable", err)
}

// List returns a filtered, sorted page of records. Non-admin callers
// are row-scoped to their own record regardless of the filter they send.
func (s *Service) List(ctx context.Context, p *auth.Principal, q employee.Query) (employee.Page, error) {
	d := authz.CanList(p)
	if !d.Allowed {
		return employee.Page{}, deny(d)
	}

	var records []employee.Employee
	if d.ScopeID != "" {
		own, err := s.repo.FindByID(ctx, d.ScopeID)
		if err != nil {
			return employee.Page{}, backend(err)
		}
		if own != nil {
			records = []employee.Employee{*own}
		}
	} else {
		var err error
		records, err = s.repo.FindAll(ctx)
		if err != nil {
			return employee.Page{}, backend(err)
		}
	}
	return employee.Apply(records, q), nil
}

// GetOne fetches a single record. An absent record is a nil result,
// not an error, so callers can tell "no such record" from "forbidden".
// A non-admin asking for someone else's id gets Forbidden whether or
// not the record exists; denial never varies with existence, so the
// response leaks nothing.
func (s *Service) GetOne(ctx context.Context, p *auth.Principal, id string) (*employee.Employee, error) {
	d := authz.CanReadOne(p, id)
	if !d.Allowed {
		return nil, deny(d)
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, backend(err)
	}
	return e, nil
}

// Me returns the caller's own record.
func (s *Service) Me(ctx context.Context, p *auth.Principal) (*employee.Employee, error) {
	if p == nil {
		return nil, apperror.New(apperror.CodeUnauthenticated, "authentication required")
	}
	e, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, backend(err)
	}
	return e, nil
}

// Create stores a new record. The plaintext secret is hashed here and
// never retained.
func (s *Service) Create(ctx context.Context, p *auth.Principal, in employee.Input) (employee.Employee, error) {
	d := authz.CanCreate(p)
	if !d.Allowed {
		return employee.Employee{}, deny(d)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return employee.Employee{}, backend(err)
	}
	e := employee.Employee{
		Name:         in.Name,
		Age:          in.Age,
		Class:        in.Class,
		Subjects:     in.Subjects,
		Attendance:   in.Attendance,
		Role:         in.Role,
		Avatar:       in.Avatar,
		Date:         in.Date,
		Email:        in.Email,
		Flagged:      in.Flagged,
		PasswordHash: hash,
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		if errors.Is(err, employee.ErrEmailTaken) {
			return employee.Employee{}, apperror.New(apperror.CodeConflict, "email already in use")
		}
		return employee.Employee{}, backend(err)
	}
	return created, nil
}

// Update applies a partial update. A restricted caller whose payload
// names any field outside the whitelist is rejected outright rather
// than silently partially applied.
func (s *Service) Update(ctx context.Context, p *auth.Principal, id string, upd employee.Update) (*employee.Employee, error) {
	d := authz.CanUpdate(p, id)
	if !d.Allowed {
		return nil, deny(d)
	}
	if d.Fields != nil {
		for _, f := range upd.Fields() {
			if !d.Fields[f] {
				return nil, apperror.New(apperror.CodeForbidden,
					"only name, avatar, subjects and class can be changed")
			}
		}
	}
	updated, err := s.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		if errors.Is(err, employee.ErrEmailTaken) {
			return nil, apperror.New(apperror.CodeConflict, "email already in use")
		}
		return nil, backend(err)
	}
	if updated == nil {
		return nil, apperror.New(apperror.CodeNotFound, "employee not found")
	}
	return updated, nil
}

// Delete removes a record. Once authorized it always succeeds:
// deleting an id that no longer exists is not an error.
func (s *Service) Delete(ctx context.Context, p *auth.Principal, id string) error {
	d := authz.CanDelete(p)
	if !d.Allowed {
		return deny(d)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return backend(err)
	}
	return nil
}

// Login exchanges email and password for a signed credential. A
// missing account and a wrong password collapse to the same failure so
// the response cannot be used to probe which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	invalid := apperror.New(apperror.CodeInvalidCredentials, "invalid credentials")

	e, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, backend(err)
	}
	if e == nil || !auth.CheckPasswordHash(password, e.PasswordHash) {
		return LoginResult{}, invalid
	}

	principal := auth.Principal{ID: e.ID, Role: e.Role, Name: e.Name}
	token, expiresAt, err := auth.Issue(principal, s.issuer, s.key, s.ttl)
	if err != nil {
		return LoginResult{}, backend(err)
	}
	return LoginResult{Token: token, ExpiresAt: expiresAt, User: e.Redacted()}, nil
}
