package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
	"github.com/mikecinchan/tcg-deck-editor/pkg/httputil"
)

type failingLoader struct{ err error }

func (l failingLoader) Fetch(context.Context, bool) ([]catalog.RawEntry, error) {
	return nil, l.err
}

func TestCatalogUnavailableCode(t *testing.T) {
	cause := errors.New("series tcgp: connection refused")
	store := catalog.NewStore(failingLoader{err: cause}, catalog.StoreOptions{})

	_, err := store.Get(context.Background())
	if err == nil {
		t.Fatal("Get() on a cold store with a failing loader should fail")
	}
	if got := errs.GetCode(err); got != errs.ErrCodeCatalogUnavailable {
		t.Errorf("GetCode() = %q, want %q", got, errs.ErrCodeCatalogUnavailable)
	}
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Error("error should match catalog.ErrUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("error should keep the fetch failure reachable")
	}
	if got := errs.UserMessage(err); got != catalog.ErrUnavailable.Message {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestTimeoutCode(t *testing.T) {
	_, err := httputil.WithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if got := errs.GetCode(err); got != errs.ErrCodeTimeout {
		t.Fatalf("GetCode(%v) = %q, want %q", err, got, errs.ErrCodeTimeout)
	}

	wrapped := fmt.Errorf("get card A1-001: %w", err)
	if got := errs.GetCode(wrapped); got != errs.ErrCodeTimeout {
		t.Errorf("GetCode(wrapped) = %q", got)
	}
	if got := errs.GetCode(errs.Wrap(errs.ErrCodeNetwork, err, "tcgdex")); got != errs.ErrCodeNetwork {
		t.Errorf("an outer *Error should take precedence, got %q", got)
	}
}
