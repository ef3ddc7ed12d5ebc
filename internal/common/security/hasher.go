package security

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// weakPrefix tags hashes produced by the fast test algorithm. Stored hashes
// are self-describing (bcrypt emits its own "$2" prefix), so verification
// works across a cost change without re-hashing anything.
const weakPrefix = "{SHA}"

// Hasher produces and verifies one-way password hashes. The cost selects the
// algorithm for new hashes: a positive value means bcrypt with that cost,
// zero means the weak SHA-1 scheme intended for fast test runs only.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if h.cost > 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		if err != nil {
			return "", err
		}
		return string(hashed), nil
	}
	sum := sha1.Sum([]byte(password))
	return weakPrefix + base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Verify reports whether password matches the stored hash. It dispatches on
// the hash's own format tag, never on the hasher's current cost. A wrong
// password or a malformed hash both yield false, never an error.
func (h *Hasher) Verify(password, encoded string) bool {
	if strings.HasPrefix(encoded, weakPrefix) {
		sum := sha1.Sum([]byte(password))
		want := weakPrefix + base64.StdEncoding.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(want), []byte(encoded)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
