package repository_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/nikolayk812/autoposter/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type postgresSlotsSuite struct {
	suite.Suite

	slots port.SlotStorage
	pool  *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestPostgresSlotsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}

	suite.Run(t, new(postgresSlotsSuite))
}

// before all tests in the suite
func (suite *postgresSlotsSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.slots = repository.NewPostgresSlots(suite.pool)
}

// after all tests in the suite
func (suite *postgresSlotsSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *postgresSlotsSuite) TestContract() {
	defer suite.deleteAll()

	testSlotStorage(suite.T(), suite.slots)
}

func (suite *postgresSlotsSuite) TestCartRoundTrip() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	repo, err := repository.NewCart(suite.slots, cartKey, nil)
	require.NoError(t, err)

	cart := randomCart(3)
	require.NoError(t, repo.Save(ctx, cart))

	assertCart(t, cart, repo.Load(ctx))
}

func (suite *postgresSlotsSuite) TestWithTxRollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txSlots := repository.NewPostgresSlotsWithTx(tx)
	require.NoError(t, txSlots.Put(ctx, cartKey, []byte(`[]`)))

	got, err := txSlots.Get(ctx, cartKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.slots.Get(ctx, cartKey)
	assert.ErrorIs(t, err, port.ErrSlotNotFound)
}

func (suite *postgresSlotsSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE storage_slots")
	suite.NoError(err)
}
