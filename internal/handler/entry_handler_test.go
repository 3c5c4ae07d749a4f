package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tagebuch/internal/handler"
	"tagebuch/internal/model"
	"tagebuch/internal/service"
	"tagebuch/internal/service/mock"
)

type entryJSON struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	Correction     string  `json:"correction"`
	Image          string  `json:"image"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      *string `json:"updatedAt"`
	DisplayTitle   string  `json:"displayTitle"`
	DateLabel      string  `json:"dateLabel"`
	BodyHTML       string  `json:"bodyHtml"`
	CorrectionHTML string  `json:"correctionHtml"`
}

func strPtr(s string) *string { return &s }

func sampleEntry() model.Entry {
	return model.Entry{
		ID:         "e-1",
		Body:       "Ich bin **sehr** müde\nGute Nacht",
		Correction: "Ich bin *sehr* müde.",
		CreatedAt:  time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestEntryHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().List(gomock.Any()).Return([]model.Entry{sampleEntry()}, nil)

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doJSON(t, e, http.MethodGet, "/api/entries", nil)
	requireStatus(t, rec, http.StatusOK)

	resp := decode[struct {
		Entries []entryJSON `json:"entries"`
	}](t, rec)
	require.Len(t, resp.Entries, 1)
	got := resp.Entries[0]
	require.Equal(t, "e-1", got.ID)
	require.Equal(t, "Ohne Titel", got.DisplayTitle)
	require.Equal(t, "14.03.2025", got.DateLabel)
	require.Equal(t, "2025-03-14T09:00:00Z", got.CreatedAt)
	require.Nil(t, got.UpdatedAt)
	require.Equal(t, "Ich bin <strong>sehr</strong> müde<br>Gute Nacht", got.BodyHTML)
	require.Equal(t, "Ich bin <em>sehr</em> müde.", got.CorrectionHTML)
}

func TestEntryHandler_ListEmptyIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().List(gomock.Any()).Return(nil, nil)

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doJSON(t, e, http.MethodGet, "/api/entries", nil)
	requireStatus(t, rec, http.StatusOK)
	require.JSONEq(t, `{"entries":[]}`, rec.Body.String())
}

func TestEntryHandler_GetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().Get(gomock.Any(), "nope").Return(model.Entry{}, service.ErrNotFound)

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doJSON(t, e, http.MethodGet, "/api/entries/nope", nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestEntryHandler_CreateJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().
		Create(gomock.Any(), service.EntryInput{
			Title: "Tag 1",
			Body:  "Hallo",
			Image: &service.ImageUpload{DataURL: "data:image/gif;base64,R0lGODlhAQABAAAAACw="},
		}).
		Return(model.Entry{ID: "e-2", Title: "Tag 1", Body: "Hallo", CreatedAt: time.Now()}, nil)

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doJSON(t, e, http.MethodPost, "/api/entries", map[string]any{
		"title": "Tag 1",
		"body":  "Hallo",
		"image": "data:image/gif;base64,R0lGODlhAQABAAAAACw=",
	})
	requireStatus(t, rec, http.StatusCreated)
	require.Equal(t, "e-2", decode[entryJSON](t, rec).ID)
}

func TestEntryHandler_CreateEmptyShowsGermanMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.Entry{}, service.ErrEmptyEntry)

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doJSON(t, e, http.MethodPost, "/api/entries", map[string]any{"title": " "})
	requireStatus(t, rec, http.StatusBadRequest)
	require.Equal(t, "Bitte gib mindestens einen Titel oder Text ein.", decode[apiError](t, rec).Error)
}

func TestEntryHandler_CreateMultipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in service.EntryInput) (model.Entry, error) {
			require.Equal(t, "Markt", in.Title)
			require.Equal(t, "Viele Äpfel", in.Body)
			require.NotNil(t, in.Image)
			require.Equal(t, "bild.png", in.Image.Filename)
			data, err := io.ReadAll(in.Image.Reader)
			require.NoError(t, err)
			require.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data)
			return model.Entry{ID: "e-3", Title: in.Title}, nil
		})

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doMultipart(t, e, http.MethodPost, "/api/entries",
		map[string]string{"title": "Markt", "body": "Viele Äpfel"}, []byte("\x89PNG\r\n\x1a\n"))
	requireStatus(t, rec, http.StatusCreated)
}

func TestEntryHandler_UpdateMultipartKeepImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().
		Update(gomock.Any(), "e-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p service.EntryPatch) (model.Entry, bool, error) {
			require.Equal(t, strPtr("Neu"), p.Title)
			require.Nil(t, p.Body)
			require.True(t, p.KeepImage)
			require.False(t, p.RemoveImage)
			require.Nil(t, p.Image)
			return sampleEntry(), true, nil
		})

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doMultipart(t, e, http.MethodPut, "/api/entries/e-1",
		map[string]string{"title": "Neu", "keepImage": "true"}, nil)
	requireStatus(t, rec, http.StatusOK)
}

func TestEntryHandler_UpdateMissingIsNoContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().
		Update(gomock.Any(), "gone", service.EntryPatch{Body: strPtr("x")}).
		Return(model.Entry{}, false, nil)

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doJSON(t, e, http.MethodPut, "/api/entries/gone", map[string]any{"body": "x"})
	requireStatus(t, rec, http.StatusNoContent)
}

func TestEntryHandler_DeleteConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	confirmer := service.ContextConfirmer{}
	svc.EXPECT().
		Delete(gomock.Any(), "e-1").
		DoAndReturn(func(ctx context.Context, _ string) error {
			if !confirmer.Confirm(ctx, service.DeletePrompt) {
				return service.ErrNotConfirmed
			}
			return nil
		}).
		Times(2)

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))

	rec := doJSON(t, e, http.MethodDelete, "/api/entries/e-1", nil)
	requireStatus(t, rec, http.StatusConflict)
	require.Equal(t, "Möchtest du diesen Eintrag wirklich löschen?", decode[apiError](t, rec).Confirm)

	rec = doJSON(t, e, http.MethodDelete, "/api/entries/e-1?confirm=true", nil)
	requireStatus(t, rec, http.StatusNoContent)
}

func TestEntryHandler_InternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockEntryService(ctrl)
	svc.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk on fire"))

	e := newTestServer(handler.NewEntryHandler(svc, time.UTC))
	rec := doJSON(t, e, http.MethodGet, "/api/entries", nil)
	requireStatus(t, rec, http.StatusInternalServerError)
	require.NotContains(t, rec.Body.String(), "disk on fire")
}
