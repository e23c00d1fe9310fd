package memory

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

func copySession(s entity.CashRegisterSession) entity.CashRegisterSession {
	if s.ActualCash != nil {
		v := *s.ActualCash
		s.ActualCash = &v
	}
	if s.ClosedAt != nil {
		t := *s.ClosedAt
		s.ClosedAt = &t
	}
	return s
}

func copyAccessRequest(r entity.SessionAccessRequest) entity.SessionAccessRequest {
	if r.ResolvedAt != nil {
		t := *r.ResolvedAt
		r.ResolvedAt = &t
	}
	return r
}

type sessionRepo struct{ base }

func openSession(st *state) *entity.CashRegisterSession {
	for _, s := range st.sessions {
		if s.Status == entity.SessionOpen {
			c := copySession(s)
			return &c
		}
	}
	return nil
}

func (r *sessionRepo) Create(_ context.Context, s *entity.CashRegisterSession) error {
	return r.do(func(st *state) error {
		if s.Status == entity.SessionOpen && openSession(st) != nil {
			return domain.ErrSessionAlreadyOpen
		}
		st.sessions[s.ID] = copySession(*s)
		return nil
	})
}

func (r *sessionRepo) GetByID(_ context.Context, id string) (*entity.CashRegisterSession, error) {
	var out *entity.CashRegisterSession
	err := r.do(func(st *state) error {
		if s, ok := st.sessions[id]; ok {
			c := copySession(s)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *sessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashRegisterSession, error) {
	return r.GetByID(ctx, id)
}

func (r *sessionRepo) GetOpen(_ context.Context) (*entity.CashRegisterSession, error) {
	var out *entity.CashRegisterSession
	err := r.do(func(st *state) error {
		out = openSession(st)
		return nil
	})
	return out, err
}

func (r *sessionRepo) GetOpenForUpdate(ctx context.Context) (*entity.CashRegisterSession, error) {
	return r.GetOpen(ctx)
}

// LockOpening no-op: el TxRunner ya serializa.
func (r *sessionRepo) LockOpening(context.Context) error { return nil }

func (r *sessionRepo) Update(_ context.Context, s *entity.CashRegisterSession) error {
	return r.do(func(st *state) error {
		if _, ok := st.sessions[s.ID]; !ok {
			return domain.NotFound("sesión de caja", s.ID)
		}
		if s.Status == entity.SessionOpen {
			if o := openSession(st); o != nil && o.ID != s.ID {
				return domain.ErrSessionAlreadyOpen
			}
		}
		st.sessions[s.ID] = copySession(*s)
		return nil
	})
}

func (r *sessionRepo) CreateAccessRequest(_ context.Context, req *entity.SessionAccessRequest) error {
	return r.do(func(st *state) error {
		st.accessRequests[req.ID] = copyAccessRequest(*req)
		return nil
	})
}

func (r *sessionRepo) GetAccessRequestForUpdate(_ context.Context, id string) (*entity.SessionAccessRequest, error) {
	var out *entity.SessionAccessRequest
	err := r.do(func(st *state) error {
		if req, ok := st.accessRequests[id]; ok {
			c := copyAccessRequest(req)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *sessionRepo) FindApprovedAccessForUpdate(_ context.Context, sessionID, requesterID string) (*entity.SessionAccessRequest, error) {
	var out *entity.SessionAccessRequest
	err := r.do(func(st *state) error {
		list := sortedByCreation(st.accessRequests, func(a entity.SessionAccessRequest) (int64, string) {
			return a.CreatedAt.UnixNano(), a.ID
		})
		for _, req := range list {
			if req.SessionID == sessionID && req.RequestedBy == requesterID && req.Status == entity.AccessApproved {
				c := copyAccessRequest(req)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *sessionRepo) UpdateAccessRequest(_ context.Context, req *entity.SessionAccessRequest) error {
	return r.do(func(st *state) error {
		if _, ok := st.accessRequests[req.ID]; !ok {
			return domain.NotFound("solicitud de acceso", req.ID)
		}
		st.accessRequests[req.ID] = copyAccessRequest(*req)
		return nil
	})
}

func (r *sessionRepo) AppendAmendment(_ context.Context, a *entity.SessionAmendment) error {
	return r.do(func(st *state) error {
		st.amendments = append(st.amendments, *a)
		return nil
	})
}

func (r *sessionRepo) ListAmendments(_ context.Context, sessionID string) ([]*entity.SessionAmendment, error) {
	var out []*entity.SessionAmendment
	err := r.do(func(st *state) error {
		for _, a := range st.amendments {
			if a.SessionID == sessionID {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}
