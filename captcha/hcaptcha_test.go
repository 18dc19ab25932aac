package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *HCaptchaVerifier {
	t.Helper()
	logging.Log = logrus.New()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v := NewHCaptchaVerifier("test-secret")
	v.Endpoint = server.URL
	return v
}

func TestHCaptchaVerifier(t *testing.T) {
	t.Run("Happy path - successful verification", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "test-secret", r.PostFormValue("secret"))
			assert.Equal(t, "good-token", r.PostFormValue("response"))
			w.Write([]byte(`{"success": true}`))
		})
		assert.True(t, v.Verify(context.Background(), "good-token"))
	})

	t.Run("Unhappy path - provider rejects the token", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
		})
		assert.False(t, v.Verify(context.Background(), "bad-token"))
	})

	t.Run("Unhappy path - empty token fails without a call", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("siteverify must not be called for an empty token")
		})
		assert.False(t, v.Verify(context.Background(), ""))
	})

	t.Run("Unhappy path - garbage response fails closed", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		})
		assert.False(t, v.Verify(context.Background(), "token"))
	})

	t.Run("Unhappy path - unreachable endpoint fails closed", func(t *testing.T) {
		logging.Log = logrus.New()
		v := NewHCaptchaVerifier("test-secret")
		v.Endpoint = "http://127.0.0.1:1/siteverify"
		assert.False(t, v.Verify(context.Background(), "token"))
	})
}

func TestBypassVerifier(t *testing.T) {
	logging.Log = logrus.New()
	assert.True(t, BypassVerifier{}.Verify(context.Background(), ""))
	assert.True(t, BypassVerifier{}.Verify(context.Background(), "anything"))
}
