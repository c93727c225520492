package shamir

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detReader is a deterministic byte stream for reproducible coefficient
// draws. Same seed, same stream.
type detReader struct {
	state uint64
}

func newDetReader(seed uint64) *detReader {
	return &detReader{state: seed}
}

func (r *detReader) Read(p []byte) (int, error) {
	for i := range p {
		// xorshift64
		r.state ^= r.state << 13
		r.state ^= r.state >> 7
		r.state ^= r.state << 17
		p[i] = byte(r.state)
	}
	return len(p), nil
}

func TestNewEngine_DegreeValidation(t *testing.T) {
	for _, degree := range []int{-1, 0, 1} {
		_, err := NewEngine(degree)
		assert.ErrorIs(t, err, ErrInvalidParameters, "degree %d must be rejected", degree)
	}

	engine, err := NewEngine(2)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.Degree())
	assert.Equal(t, 3, engine.Threshold())
}

func TestSplit_ParameterValidation(t *testing.T) {
	engine, err := NewEngine(2)
	require.NoError(t, err)

	_, err = engine.Split(big.NewInt(42), 2)
	assert.ErrorIs(t, err, ErrInvalidParameters, "parties < degree+1 must be rejected")

	_, err = engine.Split(nil, 3)
	assert.ErrorIs(t, err, ErrSecretOutOfRange)

	_, err = engine.Split(big.NewInt(-1), 3)
	assert.ErrorIs(t, err, ErrSecretOutOfRange)

	_, err = engine.Split(Prime(), 3)
	assert.ErrorIs(t, err, ErrSecretOutOfRange, "secrets must be strictly below the prime")
}

func TestSplit_ShareCoordinates(t *testing.T) {
	engine, err := NewEngine(2)
	require.NoError(t, err)

	shares, err := engine.Split(big.NewInt(42), 3)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	for i, share := range shares {
		assert.Equal(t, big.NewInt(int64(i+1)), share.X, "coordinates are 1..parties")
		assert.True(t, inField(share.Y), "share values are field elements")
	}
}

func TestSplit_MatchesUnderlyingPolynomial(t *testing.T) {
	const seed = 1337
	engine, err := NewEngine(2, WithRandom(newDetReader(seed)))
	require.NoError(t, err)

	secret := big.NewInt(42)
	shares, err := engine.Split(secret, 3)
	require.NoError(t, err)

	// Replay the same byte stream to recover the coefficients the engine
	// drew, rebuild the polynomial, and check each share against a manual
	// evaluation.
	replay := newDetReader(seed)
	c1, err := rand.Int(replay, Prime())
	require.NoError(t, err)
	c2, err := rand.Int(replay, Prime())
	require.NoError(t, err)
	require.NotZero(t, c2.Sign(), "seed must not produce a zero leading coefficient")

	poly := NewPolynomial([]*big.Int{secret, c1, c2})
	for _, share := range shares {
		want := poly.EvaluateAt(share.X)
		want.Mod(want, Prime())
		assert.Equal(t, want, share.Y, "share at x=%s must equal f(x) mod p", share.X)
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	secrets := []*big.Int{
		big.NewInt(0),
		big.NewInt(42),
		new(big.Int).Lsh(big.NewInt(1), 255), // realistic key magnitude
		new(big.Int).Sub(Prime(), big.NewInt(1)),
	}

	for degree := 2; degree <= 10; degree++ {
		engine, err := NewEngine(degree)
		require.NoError(t, err)

		for _, secret := range secrets {
			parties := degree + 3
			shares, err := engine.Split(secret, parties)
			require.NoError(t, err)
			require.Len(t, shares, parties)

			recovered, err := engine.Reconstruct(shares)
			require.NoError(t, err)
			// Compare via Cmp: reflect-based equality distinguishes big.Int
			// zero representations (nil vs empty abs).
			assert.Equal(t, 0, secret.Cmp(recovered), "degree %d secret %s", degree, secret)
		}
	}
}

func TestReconstruct_AnyQuorumAnyOrder(t *testing.T) {
	engine, err := NewEngine(3)
	require.NoError(t, err)

	secret := big.NewInt(123456789)
	shares, err := engine.Split(secret, 6)
	require.NoError(t, err)

	subsets := [][]int{
		{0, 1, 2, 3},
		{5, 4, 3, 2},
		{0, 2, 4, 5},
		{5, 0, 3, 1},
	}
	for _, indices := range subsets {
		quorum := make([]Share, 0, len(indices))
		for _, idx := range indices {
			quorum = append(quorum, shares[idx])
		}
		recovered, err := engine.Reconstruct(quorum)
		require.NoError(t, err)
		assert.Equal(t, secret, recovered, "subset %v", indices)
	}
}

func TestReconstruct_ConcreteScenario(t *testing.T) {
	// split(42, 3 parties, degree 2) and feed all three shares back.
	engine, err := NewEngine(2)
	require.NoError(t, err)

	shares, err := engine.Split(big.NewInt(42), 3)
	require.NoError(t, err)

	recovered, err := engine.Reconstruct(shares)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), recovered)

	// Only 2 of 3 shares: must fail, never return a wrong value.
	_, err = engine.Reconstruct(shares[:2])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	var insufficient *InsufficientSharesError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Required)
	assert.Equal(t, 2, insufficient.Got)
}

func TestReconstruct_DuplicateCoordinate(t *testing.T) {
	engine, err := NewEngine(2)
	require.NoError(t, err)

	shares, err := engine.Split(big.NewInt(7), 3)
	require.NoError(t, err)

	shares[2].X = new(big.Int).Set(shares[0].X)
	_, err = engine.Reconstruct(shares)
	assert.ErrorIs(t, err, ErrDuplicateCoordinate)
}

func TestReconstruct_ZeroCoordinate(t *testing.T) {
	engine, err := NewEngine(2)
	require.NoError(t, err)

	shares, err := engine.Split(big.NewInt(7), 3)
	require.NoError(t, err)

	shares[1].X = big.NewInt(0)
	_, err = engine.Reconstruct(shares)
	assert.ErrorIs(t, err, ErrZeroCoordinate)

	shares[1].X = nil
	_, err = engine.Reconstruct(shares)
	assert.ErrorIs(t, err, ErrZeroCoordinate)
}

func TestReconstruct_ObserverTrace(t *testing.T) {
	var mu sync.Mutex
	var traced []string

	engine, err := NewEngine(2, WithObserver(func(index int, x, weight *big.Int) {
		mu.Lock()
		defer mu.Unlock()
		traced = append(traced, x.String())
		assert.True(t, inField(weight))
	}))
	require.NoError(t, err)

	shares, err := engine.Split(big.NewInt(99), 4)
	require.NoError(t, err)

	_, err = engine.Reconstruct(shares)
	require.NoError(t, err)

	// One notification per quorum share, quorum size degree+1.
	assert.Equal(t, []string{"1", "2", "3"}, traced)
}

func TestEngine_ConcurrentSessions(t *testing.T) {
	engine, err := NewEngine(2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			secret := big.NewInt(int64(1000 + i))
			shares, err := engine.Split(secret, 4)
			if !assert.NoError(t, err) {
				return
			}
			recovered, err := engine.Reconstruct(shares)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, secret, recovered)
		}(i)
	}
	wg.Wait()
}

func TestSplit_DistinctCoordinatesProperty(t *testing.T) {
	engine, err := NewEngine(4)
	require.NoError(t, err)

	shares, err := engine.Split(big.NewInt(31337), 9)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for _, share := range shares {
		_, dup := seen[share.X.String()]
		assert.False(t, dup, "coordinates must be pairwise distinct")
		assert.NotZero(t, share.X.Sign())
		seen[share.X.String()] = struct{}{}
	}
}
