package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder_Empty(t *testing.T) {
	clause, args := newWhere().Clause(1)

	assert.Equal(t, "", clause)
	assert.Empty(t, args)
	assert.Equal(t, 1, newWhere().NextArg(1))
}

func TestWhereBuilder_SinglePredicate(t *testing.T) {
	where := newWhere().Eq("o.organization_name", "acme")
	clause, args := where.Clause(1)

	assert.Equal(t, "WHERE o.organization_name = $1", clause)
	assert.Equal(t, []any{"acme"}, args)
	assert.Equal(t, 2, where.NextArg(1))
}

func TestWhereBuilder_ILikeWrapsSubstring(t *testing.T) {
	clause, args := newWhere().ILike("a.account", "bob").Clause(1)

	assert.Equal(t, "WHERE a.account ILIKE $1", clause)
	assert.Equal(t, []any{"%bob%"}, args)
}

func TestWhereBuilder_MultiplePredicates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	where := newWhere().
		Eq("o.organization_name", "acme").
		Eq("a.warn_type", "geofence").
		Gte("a.time", start).
		Lte("a.time", end)
	clause, args := where.Clause(1)

	assert.Equal(t,
		"WHERE o.organization_name = $1 AND a.warn_type = $2 AND a.time >= $3 AND a.time <= $4",
		clause)
	assert.Equal(t, []any{"acme", "geofence", start, end}, args)
	assert.Equal(t, 5, where.NextArg(1))
}

func TestWhereBuilder_StartOffset(t *testing.T) {
	clause, _ := newWhere().Eq("sn", int64(7)).Clause(3)

	assert.Equal(t, "WHERE sn = $3", clause)
}
