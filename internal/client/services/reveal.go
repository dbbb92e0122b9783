package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/cipherx"
	"github.com/dmitrijs2005/gophschedule/internal/client/models"
	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/logging"
	"github.com/dmitrijs2005/gophschedule/internal/wallet"
)

const (
	// sessionKeyBytes is the size of the random session public key before
	// hex encoding.
	sessionKeyBytes = 1000

	DefaultRevealDays = 30
)

// Challenge is the text the owner signs to authorize decryption during a
// session.
type Challenge struct {
	PublicKey       string
	ContractAddress string
	ChainID         int64
	StartTimestamp  int64
	DurationDays    int
}

// NewSessionChallenge builds the challenge for a session starting at start.
// It is meant to be built once per process.
func NewSessionChallenge(contractAddress string, chainID int64, start time.Time) (Challenge, error) {
	pk, err := common.MakeRandHexString(sessionKeyBytes)
	if err != nil {
		return Challenge{}, fmt.Errorf("session key: %w", err)
	}
	return Challenge{
		PublicKey:       "0x" + pk,
		ContractAddress: contractAddress,
		ChainID:         chainID,
		StartTimestamp:  start.Unix(),
		DurationDays:    DefaultRevealDays,
	}, nil
}

// Message renders the canonical text form that gets signed.
func (c Challenge) Message() string {
	return fmt.Sprintf("publickey:%s\ncontractAddresses:%s\ncontractsChainId:%d\nstartTimestamp:%d\ndurationDays:%d",
		c.PublicKey, c.ContractAddress, c.ChainID, c.StartTimestamp, c.DurationDays)
}

// RevealService decrypts one record at a time after the owner signs the
// session challenge. It holds at most one decrypted view.
type RevealService struct {
	cipher    cipherx.Cipher
	challenge Challenge
	logger    logging.Logger

	mu      sync.Mutex
	current *models.DecryptedView
}

func NewRevealService(c cipherx.Cipher, challenge Challenge, logger logging.Logger) *RevealService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RevealService{cipher: c, challenge: challenge, logger: logger}
}

// Challenge returns the session challenge.
func (s *RevealService) Challenge() Challenge {
	return s.challenge
}

// Reveal asks signer to sign the challenge and, on success, decodes rec's
// duration and makes it the current view. On any failure the current view is
// left as it was.
func (s *RevealService) Reveal(ctx context.Context, rec models.ScheduleRecord, signer wallet.Signer) (models.DecryptedView, error) {
	if _, err := signer.Sign(ctx, s.challenge.Message()); err != nil {
		s.logger.Info(ctx, "reveal declined", "id", rec.ID, "error", err)
		if errors.Is(err, common.ErrCredentialDeclined) {
			return models.DecryptedView{}, err
		}
		return models.DecryptedView{}, fmt.Errorf("%w: %w", common.ErrCredentialDeclined, err)
	}

	d, err := s.cipher.Decode(rec.EncryptedDuration)
	if err != nil {
		return models.DecryptedView{}, fmt.Errorf("decode duration of %s: %w", rec.ID, err)
	}

	v := models.DecryptedView{ID: rec.ID, Title: rec.Title, Time: rec.Time, Duration: d}

	s.mu.Lock()
	s.current = &v
	s.mu.Unlock()

	return v, nil
}

// Current returns the decrypted view, if any.
func (s *RevealService) Current() (models.DecryptedView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.DecryptedView{}, false
	}
	return *s.current, true
}

// Clear drops the decrypted view.
func (s *RevealService) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
