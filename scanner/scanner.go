// Package scanner matches on-chain payment announcements against a set of
// registered recipients. Scanning is best-effort over independent items: a
// malformed announcement or a crypto failure on one (announcement,
// recipient) pair never aborts a batch, it just does not match.
package scanner

import (
	"runtime"
	"sync"

	"github.com/sip-protocol/sip-go/chains"
	"github.com/sip-protocol/sip-go/stealth"
	"github.com/sip-protocol/sip-go/types"
)

// Recipient is one registered key holder the scanner tests announcements
// against. The scanner holds private key material: run it only where the
// viewing (and, if registered, spending) keys are allowed to live.
type Recipient struct {
	Label              string
	Chain              types.ChainID
	SpendingPrivateKey types.HexString
	ViewingPrivateKey  types.HexString
}

// Config configures a Scanner. Defaults: Parallelism = runtime.NumCPU(),
// CacheCapacity = 4096 announcements; a negative CacheCapacity disables
// caching.
type Config struct {
	// Parallelism is the number of workers for batch scans.
	Parallelism int
	// CacheCapacity bounds the total announcements held across cached
	// block ranges; oldest ranges are evicted first.
	CacheCapacity int
}

const defaultCacheCapacity = 4096

// Scanner owns a mutable recipient registry and an optional announcement
// cache. Safe for concurrent use; each Scanner instance exclusively owns
// its state.
type Scanner struct {
	mu          sync.RWMutex
	recipients  []Recipient
	parallelism int
	cache       *announcementCache
}

// New builds a Scanner. A nil config uses the documented defaults.
func New(cfg *Config) *Scanner {
	parallelism := 0
	capacity := defaultCacheCapacity
	if cfg != nil {
		parallelism = cfg.Parallelism
		if cfg.CacheCapacity != 0 {
			capacity = cfg.CacheCapacity
		}
	}
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	s := &Scanner{parallelism: parallelism}
	if capacity > 0 {
		s.cache = newAnnouncementCache(capacity)
	}
	return s
}

// AddRecipient registers a recipient after validating that both private
// keys decode as canonical scalars on the recipient's curve.
func (s *Scanner) AddRecipient(r Recipient) error {
	curve, err := chains.CurveFor(r.Chain)
	if err != nil {
		return err
	}
	for _, field := range []struct {
		name string
		key  types.HexString
	}{
		{"spending_private_key", r.SpendingPrivateKey},
		{"viewing_private_key", r.ViewingPrivateKey},
	} {
		raw, err := types.DecodeHexField(field.name, field.key, curve.ScalarSize())
		if err != nil {
			return err
		}
		if _, err := curve.DecodeScalar(raw); err != nil {
			return types.WrapValidation(field.name, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = append(s.recipients, r)
	return nil
}

// RemoveRecipient drops all recipients with the given label, reporting
// whether any were removed.
func (s *Scanner) RemoveRecipient(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.recipients[:0]
	removed := false
	for _, r := range s.recipients {
		if r.Label == label {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	s.recipients = kept
	return removed
}

// ClearRecipients empties the registry.
func (s *Scanner) ClearRecipients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = nil
}

// RecipientCount returns the number of registered recipients.
func (s *Scanner) RecipientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipients)
}

// ScanAnnouncements tests every announcement against every registered
// recipient and returns the detected payments in input order. Announcements
// are independent and scanned in parallel; per-announcement testing stops
// at the first matching recipient, since one announcement addresses exactly
// one recipient. metadata, keyed by stealth address, optionally enriches
// matches with amount/token information; it may be nil.
func (s *Scanner) ScanAnnouncements(announcements []types.Announcement, metadata map[types.HexString]types.PaymentMetadata) []types.DetectedPayment {
	recipients := s.snapshot()
	if len(recipients) == 0 || len(announcements) == 0 {
		return nil
	}

	results := make([]*types.DetectedPayment, len(announcements))
	workers := s.parallelism
	if workers > len(announcements) {
		workers = len(announcements)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = matchAnnouncement(announcements[i], recipients, metadata)
			}
		}()
	}
	for i := range announcements {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	// Merge preserving input-relative order for determinism.
	detected := make([]types.DetectedPayment, 0, len(announcements))
	for _, r := range results {
		if r != nil {
			detected = append(detected, *r)
		}
	}
	if len(detected) == 0 {
		return nil
	}
	return detected
}

// HasAnyMatch reports whether any announcement matches any registered
// recipient, short-circuiting on the first hit. Cheap polling primitive.
func (s *Scanner) HasAnyMatch(announcements []types.Announcement) bool {
	recipients := s.snapshot()
	if len(recipients) == 0 {
		return false
	}
	for _, ann := range announcements {
		if matchAnnouncement(ann, recipients, nil) != nil {
			return true
		}
	}
	return false
}

// BatchCheckAll is the membership-only variant: it maps each matching
// stealth address to the matched recipient's label, without metadata
// enrichment.
func (s *Scanner) BatchCheckAll(announcements []types.Announcement) map[types.HexString]string {
	recipients := s.snapshot()
	matches := map[types.HexString]string{}
	if len(recipients) == 0 {
		return matches
	}
	for _, ann := range announcements {
		if hit := matchAnnouncement(ann, recipients, nil); hit != nil {
			matches[ann.StealthAddress] = hit.Label
		}
	}
	return matches
}

func (s *Scanner) snapshot() []Recipient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Recipient, len(s.recipients))
	copy(out, s.recipients)
	return out
}

// matchAnnouncement returns the first matching recipient's payment, or nil.
// Any validation or crypto failure on a pair counts as no match.
func matchAnnouncement(ann types.Announcement, recipients []Recipient, metadata map[types.HexString]types.PaymentMetadata) *types.DetectedPayment {
	if ann.StealthAddress == "" || ann.EphemeralPublicKey == "" {
		return nil
	}
	sa := types.StealthAddress{
		Address:            ann.StealthAddress,
		EphemeralPublicKey: ann.EphemeralPublicKey,
		ViewTag:            ann.ViewTag,
	}
	for _, r := range recipients {
		if ann.Chain != "" && ann.Chain != r.Chain {
			continue
		}
		ok, err := stealth.CheckOwnership(r.Chain, &sa, r.SpendingPrivateKey, r.ViewingPrivateKey)
		if err != nil || !ok {
			continue
		}
		payment := &types.DetectedPayment{Announcement: ann, Label: r.Label}
		if metadata != nil {
			payment.Metadata = metadata[ann.StealthAddress]
		}
		return payment
	}
	return nil
}
