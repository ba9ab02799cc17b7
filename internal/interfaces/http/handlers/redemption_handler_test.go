package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"smartclass24.backend/internal/domain/entities"
)

func TestRedemptionHandler_Redeem(t *testing.T) {
	env := newHandlerEnv(t)
	adminID, asAdmin := env.seedUser(t, "admin@smartclass24.app", entities.Claims{entities.ClaimAdmin: true})
	learnerID, asLearner := env.seedUser(t, "learner@example.com", entities.Claims{})
	_ = adminID

	keyHandler := NewAccessKeyHandler(env.accessKeys)
	redeemHandler := NewRedemptionHandler(env.redemptions)

	r := gin.New()
	r.POST("/access-keys", asAdmin, keyHandler.CreateAccessKey)
	r.POST("/redeem", asLearner, redeemHandler.RedeemAccessKey)

	req := httptest.NewRequest(http.MethodPost, "/access-keys",
		strings.NewReader(`{"tenantId":"wisdomwarehouse","label":"handler flow","maxUses":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.CreateAccessKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	redeem := func(key string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(entities.RedeemAccessKeyInput{AccessKey: key})
		req := httptest.NewRequest(http.MethodPost, "/redeem", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w = redeem(created.AccessKey)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "wisdomwarehouse")

	user, err := env.users.GetByID(context.Background(), learnerID)
	require.NoError(t, err)
	require.Equal(t, "wisdomwarehouse", user.TenantID)
	require.Equal(t, entities.TenantSourceAccessKey, user.TenantAccessSource)

	// repeat is a no-op success
	w = redeem(created.AccessKey)
	require.Equal(t, http.StatusOK, w.Code)

	// unknown key
	w = redeem("DEMO-0000-DEADBEEF")
	require.Equal(t, http.StatusNotFound, w.Code)

	// empty body fails binding
	req = httptest.NewRequest(http.MethodPost, "/redeem", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRedemptionHandler_ExhaustedKey(t *testing.T) {
	env := newHandlerEnv(t)
	_, asAdmin := env.seedUser(t, "admin@smartclass24.app", entities.Claims{entities.ClaimAdmin: true})
	_, asFirst := env.seedUser(t, "first@example.com", entities.Claims{})
	_, asSecond := env.seedUser(t, "second@example.com", entities.Claims{})

	keyHandler := NewAccessKeyHandler(env.accessKeys)
	redeemHandler := NewRedemptionHandler(env.redemptions)

	r := gin.New()
	r.POST("/access-keys", asAdmin, keyHandler.CreateAccessKey)
	r.POST("/redeem/first", asFirst, redeemHandler.RedeemAccessKey)
	r.POST("/redeem/second", asSecond, redeemHandler.RedeemAccessKey)

	req := httptest.NewRequest(http.MethodPost, "/access-keys",
		strings.NewReader(`{"tenantId":"demo","label":"one seat","maxUses":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.CreateAccessKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body := `{"accessKey":"` + created.AccessKey + `"}`

	req = httptest.NewRequest(http.MethodPost, "/redeem/first", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/redeem/second", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Contains(t, w.Body.String(), "resource_exhausted")
}
