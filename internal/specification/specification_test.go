package specification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking_backend/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func fixtureClients() []models.Client {
	deleted := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []models.Client{
		{
			ID: 1, Name: "Amira", Surname: "Ben Salah", Email: "amira@example.com",
			Phone: strPtr("21655001122"), City: strPtr("Tunis"), Region: strPtr("Grand Tunis"),
			RegionCode: strPtr("TN-11"), DateOfBirth: datePtr(1990, 3, 14),
			Accounts: []models.Account{{RIB: "RIB-1", ClientID: 1}},
		},
		{
			ID: 2, Name: "Karim", Surname: "Haddad", Email: "karim@example.com",
			Phone: strPtr("21299887766"), City: strPtr("Casablanca"), Region: strPtr("Casablanca-Settat"),
			RegionCode: strPtr("MA-06"), DateOfBirth: datePtr(2001, 11, 2),
		},
		{
			ID: 3, Name: "Leila", Surname: "Casale", Email: "leila@example.com",
			City: strPtr("Sfax"), Region: strPtr("Sfax"), RegionCode: strPtr("TN-61"),
		},
		{
			ID: 4, Name: "Omar", Surname: "Trabelsi", Email: "omar@example.com",
			Phone: strPtr("21655998877"), City: strPtr("Tunis"), Region: strPtr("Grand Tunis"),
			RegionCode: strPtr("TN-11"), DateOfBirth: datePtr(1975, 8, 30),
			DeletedAt: &deleted,
		},
	}
}

func countMatches(p Predicate, clients []models.Client) int {
	n := 0
	for i := range clients {
		if Matches(p, &clients[i]) {
			n++
		}
	}
	return n
}

func TestEmptyConjunctionMatchesAllLiveClients(t *testing.T) {
	clients := fixtureClients()

	assert.Nil(t, AllOf())
	assert.Nil(t, AllOf(nil, nil, nil))

	// Absent predicate is the identity.
	assert.Equal(t, len(clients), countMatches(nil, clients))

	// The executor always ANDs in the soft-delete guard; only live rows remain.
	live := AllOf(NotDeleted{}, WithName(""), WithCity(""), WithAgeRange(nil, nil))
	assert.Equal(t, 3, countMatches(live, clients))
}

func TestBuildersDegradeBlankInputToNil(t *testing.T) {
	assert.Nil(t, WithName(""))
	assert.Nil(t, WithName("   "))
	assert.Nil(t, WithCity(""))
	assert.Nil(t, WithRegion(""))
	assert.Nil(t, WithRegionCode(""))
	assert.Nil(t, WithPhonePrefix(""))
	assert.Nil(t, WithSearchQuery(" "))
	assert.Nil(t, WithAccounts(nil))
	assert.Nil(t, WithAgeRange(nil, nil))
}

func TestAddingFragmentsNeverWidensMatches(t *testing.T) {
	clients := fixtureClients()
	base := AllOf(NotDeleted{})
	baseCount := countMatches(base, clients)

	fragments := []Predicate{
		WithName("a"),
		WithCity("Tunis"),
		WithRegion("Grand Tunis"),
		WithRegionCode("TN-11"),
		WithPhonePrefix("216"),
		WithSearchQuery("example"),
		WithAccounts(boolPtr(true)),
		WithAgeRange(intPtr(18), intPtr(60)),
	}
	for _, frag := range fragments {
		require.NotNil(t, frag)
		narrowed := AllOf(NotDeleted{}, frag)
		assert.LessOrEqual(t, countMatches(narrowed, clients), baseCount)
	}
}

func TestNameMatchIsCaseInsensitiveSubstring(t *testing.T) {
	clients := fixtureClients()
	assert.Equal(t, 1, countMatches(AllOf(NotDeleted{}, WithName("aMIr")), clients))
}

func TestCityAndRegionAreExactMatches(t *testing.T) {
	clients := fixtureClients()
	assert.Equal(t, 1, countMatches(AllOf(NotDeleted{}, WithCity("Tunis")), clients))
	// Exact equality is case-sensitive, unlike the substring matches.
	assert.Equal(t, 0, countMatches(AllOf(NotDeleted{}, WithCity("tunis")), clients))
	assert.Equal(t, 0, countMatches(AllOf(NotDeleted{}, WithCity("Tun")), clients))
}

func TestPhonePrefixIsRawAndCaseSensitive(t *testing.T) {
	clients := fixtureClients()
	assert.Equal(t, 1, countMatches(AllOf(NotDeleted{}, WithPhonePrefix("216")), clients))
	assert.Equal(t, 0, countMatches(AllOf(NotDeleted{}, WithPhonePrefix("55")), clients))
}

func TestSearchQueryMatchesAcrossFields(t *testing.T) {
	clients := fixtureClients()

	// "casa" appears only in Karim's city, yet the OR across name/email/city/
	// region must surface him. Leila's surname contains "Casa" but surname is
	// not part of the searched group.
	matched := []int64{}
	q := AllOf(NotDeleted{}, WithSearchQuery("casa"))
	for i := range clients {
		if Matches(q, &clients[i]) {
			matched = append(matched, clients[i].ID)
		}
	}
	assert.Equal(t, []int64{2}, matched)
}

func TestSoftDeletedInvisibleRegardlessOfFilter(t *testing.T) {
	clients := fixtureClients()

	// Client 4 matches every one of these fragments on its attributes, but the
	// soft-delete guard keeps it out.
	q := AllOf(NotDeleted{}, WithName("Omar"), WithCity("Tunis"), WithPhonePrefix("216"))
	assert.Equal(t, 0, countMatches(q, clients))

	// Without the guard the row is reachable (the explicit deleted view).
	assert.Equal(t, 1, countMatches(WithName("Omar"), clients))
}

func TestAgeRangeBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	exactly18 := models.Client{ID: 10, Name: "Nour", Email: "nour@example.com",
		DateOfBirth: datePtr(2008, 8, 28)}

	t.Run("min only is inclusive at the boundary", func(t *testing.T) {
		p := withAgeRangeAt(intPtr(18), nil, now)
		assert.True(t, Matches(p, &exactly18))

		p = withAgeRangeAt(intPtr(19), nil, now)
		assert.False(t, Matches(p, &exactly18))
	})

	t.Run("max only excludes the day before the cutoff birthday", func(t *testing.T) {
		// Born exactly (max+1) years ago: no longer "age max", must not match.
		turned19Today := models.Client{ID: 11, DateOfBirth: datePtr(2007, 8, 28)}
		p := withAgeRangeAt(nil, intPtr(18), now)
		assert.False(t, Matches(p, &turned19Today))

		// One day younger still counts as 18.
		justUnder19 := models.Client{ID: 12, DateOfBirth: datePtr(2007, 8, 29)}
		assert.True(t, Matches(p, &justUnder19))
	})

	t.Run("both bounds include both boundary dates", func(t *testing.T) {
		p := withAgeRangeAt(intPtr(18), intPtr(30), now)
		assert.True(t, Matches(p, &exactly18))

		// Lower boundary of the window: born exactly 31 years ago. The between
		// comparison is inclusive here, unlike the max-only strict comparison.
		lowerEdge := models.Client{ID: 13, DateOfBirth: datePtr(1995, 8, 28)}
		assert.True(t, Matches(p, &lowerEdge))

		tooOld := models.Client{ID: 14, DateOfBirth: datePtr(1995, 8, 27)}
		assert.False(t, Matches(p, &tooOld))

		tooYoung := models.Client{ID: 15, DateOfBirth: datePtr(2008, 8, 29)}
		assert.False(t, Matches(p, &tooYoung))
	})

	t.Run("missing date of birth never matches an age constraint", func(t *testing.T) {
		noDob := models.Client{ID: 16, Name: "Sans"}
		assert.False(t, Matches(withAgeRangeAt(intPtr(18), nil, now), &noDob))
	})
}

func TestHasAccounts(t *testing.T) {
	clients := fixtureClients()
	assert.Equal(t, 1, countMatches(AllOf(NotDeleted{}, WithAccounts(boolPtr(true))), clients))
	assert.Equal(t, 2, countMatches(AllOf(NotDeleted{}, WithAccounts(boolPtr(false))), clients))
}

func TestAnyOfSkipsNilFragments(t *testing.T) {
	clients := fixtureClients()
	p := AnyOf(nil, WithCity("Tunis"), nil)
	assert.Equal(t, Equals{Field: FieldCity, Value: "Tunis"}, p)
	assert.Equal(t, 1, countMatches(AllOf(NotDeleted{}, p), clients))
	assert.Nil(t, AnyOf(nil, nil))
}
