package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestjam/yap-sequencer/internal/api"
	"github.com/nestjam/yap-sequencer/internal/auth"
	"github.com/nestjam/yap-sequencer/internal/domain"
	"github.com/nestjam/yap-sequencer/internal/persistance/inmemory"
	"github.com/nestjam/yap-sequencer/internal/sequence"
)

func BenchmarkSequencer(b *testing.B) {
	b.Run("with in memory store", func(b *testing.B) {
		SequencerTest{
			CreateDependencies: func() (domain.SequenceStore, Cleanup) {
				return inmemory.New(), func() {
				}
			},
		}.Benchmark(b)
	})
}

func (u SequencerTest) Benchmark(b *testing.B) {
	userID := domain.NewUserID()
	token, err := auth.New(testSecretKey, auth.TokenExp).BuildJWT(userID)
	require.NoError(b, err)

	newStore := func(b *testing.B) domain.SequenceStore {
		b.Helper()
		store, cleanup := u.CreateDependencies()
		b.Cleanup(cleanup)
		err := store.CreateSequence(context.Background(), domain.SequenceState{
			State: sequence.MustNew().Snapshot(),
			Name:  "orders",
			Owner: userID,
		})
		require.NoError(b, err)
		return store
	}

	b.Run("take id", func(b *testing.B) {
		sut := New(newStore(b), WithSecretKey(testSecretKey))

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			request := httptest.NewRequest(http.MethodPost, sequencesPath+"/orders/take", nil)
			request.Header.Set(auth.AuthorizationHeader, auth.Bearer(token))
			response := httptest.NewRecorder()
			b.StartTimer()

			sut.ServeHTTP(response, request)
		}
	})

	b.Run("take batch", func(b *testing.B) {
		sut := New(newStore(b), WithSecretKey(testSecretKey))

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			request := httptest.NewRequest(http.MethodPost, sequencesPath+"/orders/take?n=100", nil)
			request.Header.Set(auth.AuthorizationHeader, auth.Bearer(token))
			response := httptest.NewRecorder()
			b.StartTimer()

			sut.ServeHTTP(response, request)
		}
	})

	b.Run("create sequence", func(b *testing.B) {
		sut := New(newStore(b), WithSecretKey(testSecretKey))

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			body, _ := json.Marshal(api.CreateSequenceRequest{Name: "s" + strconv.Itoa(i)})
			request := httptest.NewRequest(http.MethodPost, sequencesPath, bytes.NewReader(body))
			request.Header.Set(contentTypeHeader, applicationJSON)
			request.Header.Set(auth.AuthorizationHeader, auth.Bearer(token))
			response := httptest.NewRecorder()
			b.StartTimer()

			sut.ServeHTTP(response, request)
		}
	})

	b.Run("convert", func(b *testing.B) {
		sut := New(newStore(b))
		body, _ := json.Marshal(api.ConvertRequest{Source: "0123456789", Target: "01", Text: "18446744073709551615"})

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			request := httptest.NewRequest(http.MethodPost, convertPath, bytes.NewReader(body))
			request.Header.Set(contentTypeHeader, applicationJSON)
			response := httptest.NewRecorder()
			b.StartTimer()

			sut.ServeHTTP(response, request)
		}
	})
}
