package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// setupGuardRouter wires the guard behind a fake session middleware
// that reads the session ID from a request header
func setupGuardRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/op",
		func(c *gin.Context) {
			if id := c.GetHeader("X-Test-Session"); id != "" {
				c.Set("session_id", id)
			}
		},
		SingleInFlight(client, "payment", time.Minute),
		handler)
	return router, mr
}

func submit(router *gin.Engine, sessionID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/op", nil)
	if sessionID != "" {
		req.Header.Set("X-Test-Session", sessionID)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSingleInFlight_SecondSubmitRejectedWhileBusy(t *testing.T) {
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	router, _ := setupGuardRouter(t, func(c *gin.Context) {
		entered <- struct{}{}
		<-release
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	firstDone := make(chan int, 1)
	go func() {
		firstDone <- submit(router, "sess-1").Code
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first request never reached the handler")
	}

	// Resubmitting while the first request is in flight is rejected,
	// not queued
	w := submit(router, "sess-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "em andamento")

	close(release)
	assert.Equal(t, http.StatusOK, <-firstDone)

	// The guard is released once the first request finishes
	w = submit(router, "sess-1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSingleInFlight_SessionsAreIndependent(t *testing.T) {
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	router, _ := setupGuardRouter(t, func(c *gin.Context) {
		entered <- struct{}{}
		<-release
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	firstDone := make(chan int, 1)
	go func() {
		firstDone <- submit(router, "sess-1").Code
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first request never reached the handler")
	}

	secondDone := make(chan int, 1)
	go func() {
		secondDone <- submit(router, "sess-2").Code
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("other session's request was blocked")
	}

	close(release)
	assert.Equal(t, http.StatusOK, <-firstDone)
	assert.Equal(t, http.StatusOK, <-secondDone)
}

func TestSingleInFlight_NoSessionPassesThrough(t *testing.T) {
	router, mr := setupGuardRouter(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := submit(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mr.Keys(), "no guard key without a session")
}

func TestSingleInFlight_GuardKeyExpires(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	router, mr := setupGuardRouter(t, func(c *gin.Context) {
		entered <- struct{}{}
		<-release
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	firstDone := make(chan int, 1)
	go func() {
		firstDone <- submit(router, "sess-1").Code
	}()
	<-entered

	assert.Equal(t, http.StatusConflict, submit(router, "sess-1").Code)

	// If the holder never finishes, the TTL clears the guard
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("busy:payment:sess-1"))

	close(release)
	<-firstDone
}
