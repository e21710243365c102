package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds how many documents an operation pulls at once.
const maxConcurrentFetches = 4

// Service implements the documentation operations on top of the registry
// and the caching fetcher. All methods render plain markdown strings.
type Service struct {
	fetcher *Fetcher
	log     zerolog.Logger
}

func NewService(fetcher *Fetcher, log zerolog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		log:     log,
	}
}

func (s *Service) BaseURL() string {
	return s.fetcher.BaseURL()
}

// Document returns the raw document for a topic without any rendering
// around it. Unknown topics are the only error case.
func (s *Service) Document(ctx context.Context, id TopicID) (string, error) {
	topic, ok := TopicByID(id)
	if !ok {
		return "", fmt.Errorf("unknown topic %q, valid topics: %s", id, strings.Join(TopicIDs(), ", "))
	}
	return s.fetcher.Fetch(ctx, topic.Path), nil
}

// GetDocumentation returns a topic's document followed by pointers to
// its related topics.
func (s *Service) GetDocumentation(ctx context.Context, id TopicID) (string, error) {
	topic, ok := TopicByID(id)
	if !ok {
		return "", fmt.Errorf("unknown topic %q, valid topics: %s", id, strings.Join(TopicIDs(), ", "))
	}
	content := s.fetcher.Fetch(ctx, topic.Path)
	if len(topic.Related) == 0 {
		return content, nil
	}

	var sb strings.Builder
	sb.WriteString(content)
	sb.WriteString("\n\n---\n\n## Related Topics\n")
	for _, relID := range topic.Related {
		related, ok := TopicByID(relID)
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n- **%s**: call get-documentation with topic %q", related.Title, string(related.ID)))
	}
	return sb.String(), nil
}

// fetchAll pulls the documents for the given topics concurrently and
// returns the contents in the same order. Fetch never fails, so neither
// does this.
func (s *Service) fetchAll(ctx context.Context, topics []Topic) []string {
	contents := make([]string, len(topics))
	var group errgroup.Group
	group.SetLimit(maxConcurrentFetches)
	for i, topic := range topics {
		group.Go(func() error {
			contents[i] = s.fetcher.Fetch(ctx, topic.Path)
			return nil
		})
	}
	group.Wait()
	return contents
}

// RefreshAll refetches every registered topic, bypassing the cache, and
// reports how many succeeded and how many failed. Failures leave the
// previous cached content in place.
func (s *Service) RefreshAll(ctx context.Context) (refreshed, failed int) {
	var group errgroup.Group
	group.SetLimit(maxConcurrentFetches)
	results := make([]error, len(registry))
	for i, topic := range registry {
		group.Go(func() error {
			results[i] = s.fetcher.Refresh(ctx, topic.Path)
			return nil
		})
	}
	group.Wait()
	for i, err := range results {
		if err != nil {
			failed++
			s.log.Warn().Err(err).Str("topic", string(registry[i].ID)).Msg("Refresh failed")
		} else {
			refreshed++
		}
	}
	return refreshed, failed
}
