package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/middleware"
	"encore.dev/rlog"
	"encore.dev/storage/cache"

	"encore.app/mvola/model"
)

const IdempotencyHeader = "X-Idempotency-Key"

// replayable is implemented by response envelopes that know whether they describe a success.
type replayable interface {
	Succeeded() bool
}

// IdempotencyMiddleware deduplicates requests that carry an X-Idempotency-Key header.
// Requests without the header are passed through untouched.
//
//encore:middleware target=tag:idempotency
func IdempotencyMiddleware(req middleware.Request, next middleware.Next) middleware.Response {
	idempotencyKey := extractIdempotencyKey(req)
	if idempotencyKey == "" {
		return next(req)
	}

	cacheKey := model.IdempotencyKey{
		Resource: req.Data().Path,
		Key:      idempotencyKey,
	}
	bodyHash := generateBodyHash(req)

	claimed, err := markAsProcessing(req.Context(), cacheKey, bodyHash)
	if err != nil {
		return middleware.Response{Err: err}
	}
	if !claimed {
		return handleClaimedKey(req, next, cacheKey, bodyHash, idempotencyKey)
	}

	response := next(req)
	if isSuccessful(response) {
		markAsCompleted(req.Context(), cacheKey, bodyHash, idempotencyKey, response)
	} else {
		deleteCacheEntry(req.Context(), cacheKey)
	}
	return response
}

// handleClaimedKey serves a request whose key is already held by an earlier request.
func handleClaimedKey(req middleware.Request, next middleware.Next, cacheKey model.IdempotencyKey, bodyHash, idempotencyKey string) middleware.Response {
	entry, err := IdempotencyCache.Get(req.Context(), cacheKey)
	if err != nil {
		if errors.Is(err, cache.Miss) {
			// the holder failed and released the key between both calls
			rlog.Info("Idempotency key released while checking", "key", idempotencyKey)
			return middleware.Response{
				Err: &errs.Error{Code: errs.Aborted, Message: "Request is already being processed."},
			}
		}
		rlog.Error("Failed to read idempotency cache", "error", err, "key", idempotencyKey)
		return middleware.Response{
			Err: &errs.Error{Code: errs.Internal, Message: "Failed to check idempotency"},
		}
	}

	return handleExistingEntry(req, next, entry, bodyHash, idempotencyKey)
}

func extractIdempotencyKey(req middleware.Request) string {
	if headers := req.Data().Headers; headers != nil {
		return strings.TrimSpace(headers.Get(IdempotencyHeader))
	}
	return ""
}

func generateBodyHash(req middleware.Request) string {
	payload := req.Data().Payload
	if payload == nil {
		return ""
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		rlog.Error("Failed to marshal request body", "error", err)
		return ""
	}
	return hashing(bodyBytes)
}

// isSuccessful reports whether a response may be stored for replay.
func isSuccessful(response middleware.Response) bool {
	if response.Err != nil || response.Payload == nil {
		return false
	}
	if r, ok := response.Payload.(replayable); ok {
		return r.Succeeded()
	}
	return true
}

func handleExistingEntry(req middleware.Request, next middleware.Next, entry model.IdempotencyCacheEntry, bodyHash, idempotencyKey string) middleware.Response {
	if err := validateBodyHash(entry, bodyHash); err != nil {
		return middleware.Response{Err: err}
	}

	switch entry.Status {
	case model.IdempotencyProcessing:
		rlog.Info("Concurrent request detected", "key", idempotencyKey)
		return middleware.Response{
			Err: &errs.Error{Code: errs.Aborted, Message: "Request is already being processed."},
		}
	case model.IdempotencyCompleted:
		return replayResponse(req, next, entry, idempotencyKey)
	default:
		rlog.Warn("Unknown cache entry status, processing as new request", "key", idempotencyKey, "status", entry.Status)
		return next(req)
	}
}

func validateBodyHash(entry model.IdempotencyCacheEntry, bodyHash string) *errs.Error {
	if bodyHash != "" && entry.RequestBodyHash != "" && bodyHash != entry.RequestBodyHash {
		return &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key conflict: request body does not match previous request"}
	}
	return nil
}

// replayResponse decodes the stored payload into the endpoint's response type.
// A corrupt entry is treated as a new request.
func replayResponse(req middleware.Request, next middleware.Next, entry model.IdempotencyCacheEntry, idempotencyKey string) middleware.Response {
	if len(entry.Response) > 0 {
		if api := req.Data().API; api != nil && api.ResponseType != nil {
			responseValue := reflect.New(api.ResponseType.Elem()).Interface()
			err := json.Unmarshal(entry.Response, responseValue)
			if err == nil {
				rlog.Info("Returning cached response", "key", idempotencyKey)
				return middleware.Response{Payload: responseValue}
			}
			rlog.Error("Failed to unmarshal cached response", "error", err, "key", idempotencyKey)
		}
	}

	return next(req)
}

// markAsProcessing claims the key atomically. It reports false when another request holds it.
func markAsProcessing(ctx context.Context, cacheKey model.IdempotencyKey, bodyHash string) (bool, *errs.Error) {
	err := IdempotencyCache.SetIfNotExists(ctx, cacheKey, model.IdempotencyCacheEntry{
		Status:          model.IdempotencyProcessing,
		RequestBodyHash: bodyHash,
		CreatedAt:       time.Now(),
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, cache.KeyExists):
		return false, nil
	default:
		rlog.Error("Failed to mark request as processing", "error", err)
		return false, &errs.Error{Code: errs.Internal, Message: "Failed to mark request as processing"}
	}
}

func deleteCacheEntry(ctx context.Context, cacheKey model.IdempotencyKey) {
	if _, err := IdempotencyCache.Delete(ctx, cacheKey); err != nil {
		rlog.Error("Failed to clear failed request from cache", "error", err)
	}
}

func markAsCompleted(ctx context.Context, cacheKey model.IdempotencyKey, bodyHash, idempotencyKey string, response middleware.Response) {
	payloadBytes, err := json.Marshal(response.Payload)
	if err != nil {
		rlog.Error("Failed to marshal response payload for caching", "error", err)
		deleteCacheEntry(ctx, cacheKey)
		return
	}

	now := time.Now()
	if err := IdempotencyCache.Set(ctx, cacheKey, model.IdempotencyCacheEntry{
		Status:          model.IdempotencyCompleted,
		RequestBodyHash: bodyHash,
		Response:        payloadBytes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}); err != nil {
		rlog.Error("Failed to cache successful response", "error", err)
		return
	}

	rlog.Debug("Request completed and response cached", "key", idempotencyKey)
}

func hashing(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
