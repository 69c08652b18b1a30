package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AdrianaSo123/newsletter-factory/internal/domain"
)

const defaultPressWireReadTimeout = 10 * time.Second

// pressWireAnnouncement is the wire format of one press-wire message.
type pressWireAnnouncement struct {
	Headline  string  `json:"headline"`
	Company   string  `json:"company"`
	Summary   string  `json:"summary"`
	Amount    string  `json:"amount"`
	Round     string  `json:"round"`
	Date      string  `json:"date"`
	URL       string  `json:"url"`
	Quote     string  `json:"quote"`
	Relevance float64 `json:"relevance"`
}

// pressWireSubscribe is sent once after connect.
type pressWireSubscribe struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
	Since  string `json:"since"`
}

// PressWireOptions configures a PressWireSource.
type PressWireOptions struct {
	// Endpoint is the wire's WebSocket URL.
	Endpoint string

	// ReadTimeout bounds the wait for each message. Defaults to 10s.
	ReadTimeout time.Duration
}

// PressWireSource streams funding announcements from a press-release wire
// over WebSocket. The wire replays announcements since the requested time
// and closes the stream when the backlog is drained.
type PressWireSource struct {
	endpoint    string
	readTimeout time.Duration
}

// NewPressWireSource creates a PressWireSource.
func NewPressWireSource(opts PressWireOptions) *PressWireSource {
	readTimeout := opts.ReadTimeout
	if readTimeout == 0 {
		readTimeout = defaultPressWireReadTimeout
	}
	return &PressWireSource{endpoint: opts.Endpoint, readTimeout: readTimeout}
}

var _ Source = (*PressWireSource)(nil)

func (s *PressWireSource) Name() string { return "presswire" }

func (s *PressWireSource) Category() domain.Category { return domain.CategoryInvestment }

// Fetch connects to the wire, subscribes to funding announcements since
// the given time, and drains the stream up to maxResults.
func (s *PressWireSource) Fetch(ctx context.Context, since time.Time, maxResults int) ([]*domain.CandidateRecord, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	// Close the connection when the context ends so blocked reads unwind.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	sub := pressWireSubscribe{
		Action: "subscribe",
		Topic:  "funding",
		Since:  since.UTC().Format(time.RFC3339),
	}
	if err := conn.WriteJSON(sub); err != nil {
		return nil, fmt.Errorf("write subscribe: %w", err)
	}

	now := time.Now().UTC()
	var records []*domain.CandidateRecord
	for maxResults <= 0 || len(records) < maxResults {
		conn.SetReadDeadline(time.Now().Add(s.readTimeout))

		var ann pressWireAnnouncement
		if err := conn.ReadJSON(&ann); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				break
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("read announcement: %w", err)
		}

		rec := s.toRecord(&ann, now)
		if rec != nil {
			records = append(records, rec)
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	return records, nil
}

// toRecord maps an announcement onto a candidate record. Announcements
// without a company are dropped; the wire carries non-funding noise too.
func (s *PressWireSource) toRecord(ann *pressWireAnnouncement, now time.Time) *domain.CandidateRecord {
	if ann.Company == "" {
		return nil
	}

	quote := ann.Quote
	if quote == "" {
		quote = ann.Headline
	}

	// Wire relevance maps directly onto confidence.
	confidence := ann.Relevance
	if confidence == 0 {
		confidence = 0.5
	}

	return &domain.CandidateRecord{
		Category:      domain.CategoryInvestment,
		Company:       ann.Company,
		Investors:     ExtractInvestors(ann.Summary),
		Summary:       summarize(ann.Headline + " " + ann.Summary),
		AmountText:    ann.Amount,
		StageText:     ann.Round,
		DateText:      ann.Date,
		SourceName:    s.Name(),
		SourceURL:     ann.URL,
		EvidenceQuote: quote,
		Confidence:    confidence,
		RetrievedAt:   now,
	}
}
