package tickets

import (
	"context"
	"fmt"

	"simplyfly/internal/draft"
	"simplyfly/internal/flow"
)

type Service interface {
	// Confirmation marks the flow confirmed and returns the final booking
	// summary. Re-entering the screen is idempotent.
	Confirmation(ctx context.Context, sessionID string) (Confirmation, error)

	// ETicket renders the confirmation as a PDF for download.
	ETicket(ctx context.Context, sessionID string) ([]byte, string, error)
}

type service struct {
	flows  *flow.Manager
	drafts draft.Store
}

func NewService(flows *flow.Manager, drafts draft.Store) Service {
	return &service{flows: flows, drafts: drafts}
}

func (s *service) Confirmation(ctx context.Context, sessionID string) (Confirmation, error) {
	cb, err := s.drafts.ReadComplete(ctx, sessionID)
	if err != nil {
		return Confirmation{}, err
	}

	if err := s.flows.Advance(ctx, sessionID, flow.StateConfirmed); err != nil {
		return Confirmation{}, err
	}
	return newConfirmation(cb), nil
}

func (s *service) ETicket(ctx context.Context, sessionID string) ([]byte, string, error) {
	cb, err := s.drafts.ReadComplete(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	conf := newConfirmation(cb)
	data, err := buildETicketPDF(conf)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("eticket-%s.pdf", conf.TicketNumber)
	return data, filename, nil
}
