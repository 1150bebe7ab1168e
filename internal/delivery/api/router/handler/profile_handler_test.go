package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	mockUsecase "neighborhood/internal/mocks/usecase"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProfileHandler(t *testing.T) (*ProfileHandler, *mockUsecase.MockProfileUsecase) {
	profileUC := mockUsecase.NewMockProfileUsecase(t)

	return NewProfileHandler(ProfileHandlerParams{
		ProfileUC: profileUC,
		AccessUC:  mockUsecase.NewMockAccessUsecase(t),
		Logger:    slog.Default(),
	}), profileUC
}

func TestProfileHandler_PublicHonoursPrivacy(t *testing.T) {
	h, profileUC := newProfileHandler(t)

	visible := uuid.New()
	hidden := uuid.New()
	profileUC.On("GetPublicProfile", mock.Anything, visible).
		Return(&usecase.PublicProfile{ID: visible, DisplayName: "Ana"}, nil).Once()
	profileUC.On("GetPublicProfile", mock.Anything, hidden).
		Return(nil, errors.WithStack(domainerrors.ErrProfilePrivate)).Once()

	rec := serve(t, testRequest{
		method: http.MethodGet,
		target: "/api/v1/profiles/" + visible.String(),
		params: map[string]string{"id": visible.String()},
	}, h.Public)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got usecase.PublicProfile
	decodeData(t, rec, &got)
	assert.Equal(t, "Ana", got.DisplayName)

	rec = serve(t, testRequest{
		method: http.MethodGet,
		target: "/api/v1/profiles/" + hidden.String(),
		params: map[string]string{"id": hidden.String()},
	}, h.Public)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PROFILE_PRIVATE", decodeError(t, rec).Code)
}

func TestProfileHandler_UpdatePassesAvatar(t *testing.T) {
	h, profileUC := newProfileHandler(t)
	session := newSession()

	profileUC.On("UpdateProfile", mock.Anything, session.UserID, mock.MatchedBy(func(in *usecase.UpdateProfileInput) bool {
		return in.FullName == "Ana Cruz" && in.Location == "Ormoc" &&
			in.Avatar != nil && string(in.Avatar.Content) == "img"
	})).Return(&entity.Profile{ID: session.UserID, FullName: "Ana Cruz"}, nil).Once()

	body, ctype := multipartBody(t, map[string]string{"full_name": "Ana Cruz", "location": "Ormoc"}, "avatar", "me.png", []byte("img"))
	rec := serve(t, testRequest{method: http.MethodPut, target: "/api/v1/me", body: body, ctype: ctype, session: session}, h.Update)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileHandler_UpdatePrivacyKeepsUnsetFlags(t *testing.T) {
	h, profileUC := newProfileHandler(t)
	session := newSession()

	profileUC.On("UpdatePrivacy", mock.Anything, session.UserID, mock.MatchedBy(func(s entity.PrivacySettings) bool {
		return s.IsPublic != nil && !*s.IsPublic && s.ShowEmail == nil && s.ShowActivity == nil
	})).Return(&entity.Profile{ID: session.UserID}, nil).Once()

	rec := serve(t, testRequest{
		method:  http.MethodPut,
		target:  "/api/v1/me/privacy",
		body:    jsonBody(t, map[string]any{"is_public": false}),
		ctype:   "application/json",
		session: session,
	}, h.UpdatePrivacy)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileHandler_PortalEchoesGrantedProfile(t *testing.T) {
	h, _ := newProfileHandler(t)

	rec := serve(t, testRequest{method: http.MethodGet, target: "/seller/session", session: newSession()}, h.Portal(entity.PortalSeller))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	decodeData(t, rec, &got)
	assert.Equal(t, "seller", got["portal"])
	assert.Equal(t, string(usecase.DecisionGranted), got["decision"])
}
