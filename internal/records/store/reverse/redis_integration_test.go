//go:build integration

package reverse_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"nameledger/internal/naming"
	"nameledger/internal/records/store/reverse"
	"nameledger/pkg/platform/sentinel"
	"nameledger/pkg/testutil/containers"
)

type RedisReverseSuite struct {
	suite.Suite

	ctx       context.Context
	container *containers.RedisContainer
	store     *reverse.Redis
}

func TestRedisReverseSuite(t *testing.T) {
	suite.Run(t, new(RedisReverseSuite))
}

func (s *RedisReverseSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewRedisContainer(s.T())
	s.store = reverse.NewRedis(s.container.Client)
}

func (s *RedisReverseSuite) SetupTest() {
	s.Require().NoError(s.container.FlushAll(s.ctx))
}

func (s *RedisReverseSuite) addr(fill byte) naming.Address {
	addr, err := naming.ParseAddress(strings.Repeat(hex.EncodeToString([]byte{fill}), 32))
	s.Require().NoError(err)
	return addr
}

func (s *RedisReverseSuite) TestPutGet() {
	addr := s.addr(0x11)

	s.Require().NoError(s.store.Put(s.ctx, addr, naming.Name("eastagile.sui")))

	name, err := s.store.Get(s.ctx, addr)
	s.Require().NoError(err)
	s.Equal(naming.Name("eastagile.sui"), name)
}

func (s *RedisReverseSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, s.addr(0x22))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisReverseSuite) TestPutOverwrites() {
	addr := s.addr(0x11)

	s.Require().NoError(s.store.Put(s.ctx, addr, naming.Name("old.sui")))
	s.Require().NoError(s.store.Put(s.ctx, addr, naming.Name("new.sui")))

	name, err := s.store.Get(s.ctx, addr)
	s.Require().NoError(err)
	s.Equal(naming.Name("new.sui"), name)
}

func (s *RedisReverseSuite) TestDeleteIdempotent() {
	addr := s.addr(0x11)

	s.Require().NoError(s.store.Put(s.ctx, addr, naming.Name("eastagile.sui")))
	s.Require().NoError(s.store.Delete(s.ctx, addr))
	s.Require().NoError(s.store.Delete(s.ctx, addr), "deleting an absent entry succeeds")

	_, err := s.store.Get(s.ctx, addr)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
