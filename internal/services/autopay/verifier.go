package autopay

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"tkbet/internal/models"
	"tkbet/internal/repositories"
	"tkbet/internal/services/transaction"
	"tkbet/internal/worker"
)

// VerifierMetrics receives verifier outcomes. The Prometheus implementation
// lives in internal/metrics.
type VerifierMetrics interface {
	ClaimMatched()
	ClaimExpired()
}

type noopVerifierMetrics struct{}

func (noopVerifierMetrics) ClaimMatched() {}
func (noopVerifierMetrics) ClaimExpired() {}

// Verifier is the background loop matching pending auto-payment claims
// against provider confirmations. One ticker drives both matching and
// expiry; cancelling the context stops everything.
type Verifier struct {
	claimRepo repositories.AutoPaymentRepository
	txns      transaction.Service
	provider  ProviderClient
	pool      *worker.Pool
	metrics   VerifierMetrics
	interval  time.Duration
	now       func() time.Time
}

// NewVerifier wires the verifier. pool may be nil to run completions
// inline; metrics may be nil.
func NewVerifier(
	claimRepo repositories.AutoPaymentRepository,
	txns transaction.Service,
	provider ProviderClient,
	pool *worker.Pool,
	metrics VerifierMetrics,
	interval time.Duration,
) *Verifier {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if metrics == nil {
		metrics = noopVerifierMetrics{}
	}
	return &Verifier{
		claimRepo: claimRepo,
		txns:      txns,
		provider:  provider,
		pool:      pool,
		metrics:   metrics,
		interval:  interval,
		now:       time.Now,
	}
}

// Run blocks until ctx is cancelled, sweeping pending claims every tick.
func (v *Verifier) Run(ctx context.Context) {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	log.Printf("Auto-payment verifier started, interval %s", v.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Auto-payment verifier stopped")
			return
		case <-ticker.C:
			v.sweep(ctx)
		}
	}
}

func (v *Verifier) sweep(ctx context.Context) {
	claims, err := v.claimRepo.ListPending()
	if err != nil {
		log.Printf("Verifier: failed to list pending claims: %v", err)
		return
	}
	if len(claims) == 0 {
		return
	}

	confirmations, err := v.provider.FetchConfirmations(ctx)
	if err != nil {
		log.Printf("Verifier: provider fetch failed: %v", err)
		confirmations = nil // expiry still runs
	}

	now := v.now()
	for i := range claims {
		claim := &claims[i]

		if conf, ok := matchConfirmation(claim, confirmations); ok {
			v.match(claim, conf)
			continue
		}

		if claim.Expired(now) {
			v.expire(claim)
		}
	}
}

// match flips the claim before scheduling the transaction side effects so
// a claim is never matched twice across sweeps.
func (v *Verifier) match(claim *models.AutoPaymentClaim, conf Confirmation) {
	claim.Status = models.ClaimStatusMatched
	if err := v.claimRepo.Save(claim); err != nil {
		log.Printf("Verifier: failed to mark claim %d matched: %v", claim.ID, err)
		return
	}
	v.metrics.ClaimMatched()

	txnID := claim.TransactionID
	complete := func() {
		_, err := v.txns.Complete(txnID, "auto-payment verified")
		if err == nil {
			return
		}
		log.Printf("Verifier: failed to complete transaction %d: %v", txnID, err)
		if errors.Is(err, transaction.ErrInvalidTransition) {
			return
		}
		// Put the claim back so the next sweep retries the credit.
		claim.Status = models.ClaimStatusPending
		if err := v.claimRepo.Save(claim); err != nil {
			log.Printf("Verifier: failed to requeue claim %d: %v", claim.ID, err)
		}
	}
	if v.pool != nil {
		v.pool.Submit(complete)
	} else {
		complete()
	}
}

func (v *Verifier) expire(claim *models.AutoPaymentClaim) {
	claim.Status = models.ClaimStatusExpired
	if err := v.claimRepo.Save(claim); err != nil {
		log.Printf("Verifier: failed to expire claim %d: %v", claim.ID, err)
		return
	}
	v.metrics.ClaimExpired()

	if _, err := v.txns.Expire(claim.TransactionID); err != nil {
		log.Printf("Verifier: failed to expire transaction %d: %v", claim.TransactionID, err)
	}
}

func matchConfirmation(claim *models.AutoPaymentClaim, confirmations []Confirmation) (Confirmation, bool) {
	for _, conf := range confirmations {
		if strings.EqualFold(conf.TrxID, claim.TrxID) && conf.Amount == claim.Amount {
			return conf, true
		}
	}
	return Confirmation{}, false
}
