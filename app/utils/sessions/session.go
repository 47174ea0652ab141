package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "storefront-session"

	userIDSessionKey       = "userID"
	cartSessionKey         = "cart"
	pendingOrderCodeKey    = "pendingOrderCode"
	checkoutSnapshotKey    = "checkoutSnapshot"
)

// SessionStore is the browser-owned state of one visitor: the admin login,
// the serialized cart, the pending order code and the parked checkout
// snapshot. Everything crosses the cookie boundary as plain strings.
type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error
	ClearUserID(w http.ResponseWriter, r *http.Request) error

	GetCartPayload(r *http.Request) string
	SetCartPayload(w http.ResponseWriter, r *http.Request, payload string) error
	ClearCart(w http.ResponseWriter, r *http.Request) error

	GetPendingOrderCode(r *http.Request) string
	SetPendingOrderCode(w http.ResponseWriter, r *http.Request, code string) error
	ClearPendingOrderCode(w http.ResponseWriter, r *http.Request) error

	GetCheckoutSnapshot(r *http.Request) string
	SetCheckoutSnapshot(w http.ResponseWriter, r *http.Request, payload string) error
	ClearCheckoutSnapshot(w http.ResponseWriter, r *http.Request) error

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A decode failure yields a fresh session; the old cookie is replaced
		// on the next save.
		log.Printf("CookieSessionStore: error getting session: %v", err)
	}
	return session
}

func (c *CookieSessionStore) getString(r *http.Request, key string) string {
	session := c.getSession(r)
	if session == nil {
		return ""
	}
	value, ok := session.Values[key].(string)
	if !ok {
		return ""
	}
	return value
}

func (c *CookieSessionStore) setString(w http.ResponseWriter, r *http.Request, key, value string) error {
	session := c.getSession(r)
	if session == nil {
		return nil
	}
	session.Values[key] = value
	return session.Save(r, w)
}

func (c *CookieSessionStore) clearKey(w http.ResponseWriter, r *http.Request, key string) error {
	session := c.getSession(r)
	if session == nil {
		return nil
	}
	delete(session.Values, key)
	return session.Save(r, w)
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	return c.getString(r, userIDSessionKey)
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	return c.setString(w, r, userIDSessionKey, userID)
}

func (c *CookieSessionStore) ClearUserID(w http.ResponseWriter, r *http.Request) error {
	return c.clearKey(w, r, userIDSessionKey)
}

func (c *CookieSessionStore) GetCartPayload(r *http.Request) string {
	return c.getString(r, cartSessionKey)
}

func (c *CookieSessionStore) SetCartPayload(w http.ResponseWriter, r *http.Request, payload string) error {
	return c.setString(w, r, cartSessionKey, payload)
}

func (c *CookieSessionStore) ClearCart(w http.ResponseWriter, r *http.Request) error {
	return c.clearKey(w, r, cartSessionKey)
}

func (c *CookieSessionStore) GetPendingOrderCode(r *http.Request) string {
	return c.getString(r, pendingOrderCodeKey)
}

func (c *CookieSessionStore) SetPendingOrderCode(w http.ResponseWriter, r *http.Request, code string) error {
	return c.setString(w, r, pendingOrderCodeKey, code)
}

func (c *CookieSessionStore) ClearPendingOrderCode(w http.ResponseWriter, r *http.Request) error {
	return c.clearKey(w, r, pendingOrderCodeKey)
}

func (c *CookieSessionStore) GetCheckoutSnapshot(r *http.Request) string {
	return c.getString(r, checkoutSnapshotKey)
}

func (c *CookieSessionStore) SetCheckoutSnapshot(w http.ResponseWriter, r *http.Request, payload string) error {
	return c.setString(w, r, checkoutSnapshotKey, payload)
}

func (c *CookieSessionStore) ClearCheckoutSnapshot(w http.ResponseWriter, r *http.Request) error {
	return c.clearKey(w, r, checkoutSnapshotKey)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	if session == nil {
		return nil
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
