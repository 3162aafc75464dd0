// internal/domain/translation/translator.go
package translation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/config"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

// Language preference values as persisted in the local store
const (
	LangEnglish = "E"
	LangKannada = "K"
)

// Backend performs machine translation for strings the static
// dictionaries do not cover.
type Backend interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Translator resolves display-text keys with three-tier fallback:
// static dictionary, runtime cache of machine translations, and
// finally the base-language text while a background translation runs.
// Translate never blocks on the network and never fails on a missing
// key.
type Translator struct {
	store   localstore.Store
	backend Backend
	cfg     *config.Config
	log     *logrus.Logger

	mu      sync.Mutex
	lang    string
	cache   map[string]string
	pending map[string]bool
}

// NewTranslator creates a translator, loading the persisted language
// preference. A missing or unreadable preference defaults to English.
func NewTranslator(store localstore.Store, backend Backend, cfg *config.Config, log *logrus.Logger) *Translator {
	t := &Translator{
		store:   store,
		backend: backend,
		cfg:     cfg,
		log:     log,
		lang:    LangEnglish,
		cache:   make(map[string]string),
		pending: make(map[string]bool),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	lang, err := store.Get(ctx, localstore.KeyLanguage)
	if err == nil && (lang == LangEnglish || lang == LangKannada) {
		t.lang = lang
	} else if err != nil && err != localstore.ErrNotFound {
		log.WithError(err).Warn("Failed to read language preference, defaulting to English")
	}

	return t
}

// Language returns the selected language preference
func (t *Translator) Language() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lang
}

// SetLanguage switches the language preference and persists it
func (t *Translator) SetLanguage(ctx context.Context, lang string) error {
	if lang != LangEnglish && lang != LangKannada {
		return fmt.Errorf("unsupported language %q", lang)
	}

	if err := t.store.Set(ctx, localstore.KeyLanguage, lang); err != nil {
		return fmt.Errorf("failed to persist language preference: %w", err)
	}

	t.mu.Lock()
	t.lang = lang
	t.mu.Unlock()
	return nil
}

// Translate resolves key to display text in the selected language. In
// the base language this is a plain dictionary lookup. Otherwise the
// static target dictionary is tried first, then the runtime cache of
// machine translations; on a double miss the base text is returned
// immediately and a background translation populates the cache for
// future calls. Concurrent lookups of the same untranslated key share
// one in-flight request.
func (t *Translator) Translate(key string) string {
	t.mu.Lock()
	lang := t.lang
	t.mu.Unlock()

	if lang == LangEnglish {
		return baseText(key)
	}

	if text, ok := staticTranslation(lang, key); ok {
		return text
	}

	t.mu.Lock()
	if text, ok := t.cache[key]; ok {
		t.mu.Unlock()
		return text
	}

	if !t.pending[key] {
		t.pending[key] = true
		go t.fetchTranslation(key)
	}
	t.mu.Unlock()

	return baseText(key)
}

// CachedCount reports how many machine translations are held in the
// runtime cache.
func (t *Translator) CachedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cache)
}

// fetchTranslation runs detached from the caller: its completion only
// affects future Translate calls for the same key.
func (t *Translator) fetchTranslation(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.Translation.RequestTimeout)
	defer cancel()

	translated, err := t.backend.Translate(ctx, baseText(key),
		t.cfg.Translation.SourceLang, t.cfg.Translation.TargetLang)

	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.pending, key)
	if err != nil {
		// The next lookup retries; until then callers keep seeing the
		// base text.
		t.log.WithField("key", key).WithError(err).Warn("Background translation failed")
		return
	}
	t.cache[key] = translated
}
