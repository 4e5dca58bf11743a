package calai

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/app"
	"github.com/ccorchooo/CalAIFree/internal/db"
	"github.com/ccorchooo/CalAIFree/internal/provider/gemini"
	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
)

func withStore(run func(*store.Store) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(store.New(sqldb))
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := os.Getenv("CALAI_DB"); env != "" {
		return env, nil
	}
	return app.DefaultDBPath()
}

func requireSession(st *store.Store) (*service.Session, error) {
	sess, err := service.LoadSession(st, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			return nil, fmt.Errorf("not logged in (run: calai login <username> or calai signup <username>)")
		}
		return nil, err
	}
	return sess, nil
}

func requireProfile(sess *service.Session) error {
	if sess.Profile == nil {
		return fmt.Errorf("no profile for %q yet (run: calai onboard)", sess.Username)
	}
	return nil
}

// newGeminiClient reads the API key from the environment and model/base URL
// overrides from app config. The key is never persisted.
func newGeminiClient(st *store.Store) (*gemini.Client, error) {
	client := &gemini.Client{APIKey: os.Getenv("GEMINI_API_KEY")}
	if model, ok, err := st.GetConfig(store.ConfigGeminiModel); err != nil {
		return nil, err
	} else if ok {
		client.Model = model
	}
	if baseURL, ok, err := st.GetConfig(store.ConfigGeminiBaseURL); err != nil {
		return nil, err
	} else if ok {
		client.BaseURL = baseURL
	}
	return client, nil
}
