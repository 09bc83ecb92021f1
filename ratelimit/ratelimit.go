// Redis backed request rate limiting.
package ratelimit

import (
	"crypto/sha512"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"botdex/state"
)

type Bucket struct {
	Name     string
	Requests int
	Time     time.Duration
}

// The global bucket applied to every API request
var GlobalBucket = Bucket{Name: "global", Requests: 500, Time: 2 * time.Minute}

// requesterID keys the bucket by token when the request is authenticated
// and by hashed remote ip otherwise
func requesterID(r *http.Request) string {
	auth := r.Header.Get("Authorization")

	if auth != "" {
		hasher := sha512.New()
		hasher.Write([]byte(auth))
		return fmt.Sprintf("%x", hasher.Sum(nil))
	}

	remoteIp := strings.Split(strings.ReplaceAll(r.Header.Get("X-Forwarded-For"), " ", ""), ",")

	if remoteIp[0] == "" {
		remoteIp[0] = r.RemoteAddr
	}

	// For user privacy, hash the remote ip
	hasher := sha512.New()
	hasher.Write([]byte(remoteIp[0]))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func handle(bucket Bucket, id string, w http.ResponseWriter, r *http.Request) bool {
	rlKey := "rl:" + id + "-" + bucket.Name

	v := state.Redis.Get(r.Context(), rlKey).Val()

	if v == "" {
		v = "0"

		err := state.Redis.Set(state.Context, rlKey, "0", bucket.Time).Err()

		if err != nil {
			state.Logger.Error(err)
			return false
		}
	}

	err := state.Redis.Incr(state.Context, rlKey).Err()

	if err != nil {
		state.Logger.Error(err)
		return false
	}

	vInt, err := strconv.Atoi(v)

	if err != nil {
		state.Logger.Error(err)
		return false
	}

	if vInt < 0 {
		state.Redis.Expire(state.Context, rlKey, 1*time.Second)
		vInt = 0
	}

	if vInt > bucket.Requests {
		retryAfter := state.Redis.TTL(state.Context, rlKey).Val()

		w.Header().Set("Retry-After", strconv.FormatFloat(retryAfter.Seconds(), 'g', -1, 64))
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("{\"message\":\"You're being rate limited!\",\"error\":true}"))

		return false
	}

	w.Header().Set("X-Ratelimit-Req-Made", strconv.Itoa(vInt))

	return true
}

// Middleware enforces the bucket for every request passing through it
func Middleware(bucket Bucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok := handle(bucket, requesterID(r), w, r); !ok {
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
