package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
	"github.com/lcx/levelsync/net"
	"github.com/lcx/levelsync/packets"
	"github.com/lcx/levelsync/types"
)

func account(id int32) types.PlayerAccountData {
	return types.PlayerAccountData{
		AccountID: id,
		UserID:    id * 10,
		Name:      codec.MustInlineString("p" + string(rune('a'+id%26))),
		Icons:     types.DefaultIcons,
	}
}

func newManagerWith(t *testing.T, ids ...int32) *PlayerManager {
	t.Helper()
	m := NewPlayerManager()
	for _, id := range ids {
		require.True(t, m.CreatePlayer(account(id)))
	}
	return m
}

// levelData writes the LevelData list for requester using snapshot-then-fixup and
// returns the encoded packet, the budget and the number of records written.
func levelData(m *PlayerManager, levelID, requester int32, between func()) ([]byte, int, int) {
	n, _ := m.PlayerCountOnLevel(levelID)
	budget := n - 1
	if budget < 0 {
		budget = 0
	}

	buf := buffer.NewFastBuffer(packets.ListSize(budget, types.SizeAssociatedPlayerData))
	net.WriteHeader(buf, packets.LevelData{})
	buf.WriteU32(uint32(budget))

	if between != nil {
		between()
	}

	written := m.ForEachPlayerOnLevel(levelID, func(p *PlayerEntry, count int, w buffer.Writer) bool {
		if count >= budget || p.Account.AccountID == requester {
			return false
		}
		p.Data.Encode(w)
		return true
	}, buf)

	if written != budget {
		buf.SetPos(net.HeaderSize)
		buf.WriteU32(uint32(written))
	}
	return buf.Bytes(), budget, written
}

func decodeLevelData(t *testing.T, data []byte) []types.AssociatedPlayerData {
	t.Helper()
	hdr, err := net.DecodeHeader(data)
	require.NoError(t, err)
	require.Equal(t, packets.LevelDataID, hdr.ID)

	r := buffer.NewByteReader(data[net.HeaderSize:])
	out, err := codec.DecodeSlice[types.AssociatedPlayerData](r)
	require.NoError(t, err)
	assert.Zero(t, r.Remaining())
	return out
}

func TestLevelMembership(t *testing.T) {
	m := newManagerWith(t, 1, 2, 3)

	_, ok := m.PlayerCountOnLevel(5)
	assert.False(t, ok)

	require.True(t, m.AddToLevel(5, 1))
	require.True(t, m.AddToLevel(5, 2))
	require.True(t, m.AddToLevel(5, 2))
	n, ok := m.PlayerCountOnLevel(5)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	// moving levels keeps a single roster per player
	require.True(t, m.AddToLevel(6, 2))
	n, _ = m.PlayerCountOnLevel(5)
	assert.Equal(t, 1, n)
	p, ok := m.Player(2)
	require.True(t, ok)
	assert.Equal(t, int32(6), p.LevelID)

	assert.False(t, m.AddToLevel(5, 99), "unknown account")
	assert.False(t, m.AddToLevel(0, 1), "level 0 means none")
	assert.Equal(t, 2, m.LevelCount())
}

func TestAddRemoveRestoresRoster(t *testing.T) {
	tests := []struct {
		name     string
		existing []int32
	}{
		{"sole member", nil},
		{"shared level", []int32{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManagerWith(t, 1, 2, 3)
			for _, id := range tt.existing {
				m.AddToLevel(9, id)
			}
			before, tracked := m.PlayerCountOnLevel(9)

			require.True(t, m.AddToLevel(9, 1))
			m.RemoveFromLevel(9, 1)
			m.RemoveFromLevel(9, 1)

			after, stillTracked := m.PlayerCountOnLevel(9)
			assert.Equal(t, before, after)
			assert.Equal(t, tracked, stillTracked)

			p, _ := m.Player(1)
			assert.Zero(t, p.LevelID)
		})
	}
}

func TestRemoveFromOtherLevelKeepsMembership(t *testing.T) {
	m := newManagerWith(t, 1)
	m.AddToLevel(5, 1)
	m.RemoveFromLevel(6, 1)

	p, _ := m.Player(1)
	assert.Equal(t, int32(5), p.LevelID)
}

func TestCreateAndRemovePlayer(t *testing.T) {
	m := newManagerWith(t, 1)
	m.AddToLevel(4, 1)

	renamed := account(1)
	renamed.Name = codec.MustInlineString("renamed")
	assert.False(t, m.CreatePlayer(renamed))
	p, _ := m.Player(1)
	assert.Equal(t, "renamed", p.Account.Name.String())
	assert.Equal(t, int32(1), p.Data.AccountID)
	assert.Equal(t, int32(1), p.Meta.AccountID)

	assert.True(t, m.RemovePlayer(1))
	assert.False(t, m.RemovePlayer(1))
	_, ok := m.PlayerCountOnLevel(4)
	assert.False(t, ok)
	assert.Zero(t, m.PlayerCount())
}

func TestCreateExistingPlayerLeavesLevel(t *testing.T) {
	tests := []struct {
		name      string
		others    []int32
		wantCount int
		tracked   bool
	}{
		{"alone on level", nil, 0, false},
		{"level keeps others", []int32{2, 3}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManagerWith(t, append([]int32{1}, tt.others...)...)
			require.True(t, m.AddToLevel(4, 1))
			for _, id := range tt.others {
				require.True(t, m.AddToLevel(4, id))
			}

			assert.False(t, m.CreatePlayer(account(1)))

			p, ok := m.Player(1)
			require.True(t, ok)
			assert.Zero(t, p.LevelID)
			n, ok := m.PlayerCountOnLevel(4)
			assert.Equal(t, tt.tracked, ok)
			assert.Equal(t, tt.wantCount, n)
			assert.NotContains(t, m.PlayersOnLevel(4, 0), int32(1))

			require.True(t, m.AddToLevel(4, 1))
			assert.Equal(t, append(tt.others, 1), m.PlayersOnLevel(4, 0))
		})
	}
}

func TestSetPlayerDataAndMetadata(t *testing.T) {
	m := newManagerWith(t, 1)

	data := types.PlayerData{Timestamp: 1.5, Percentage: 40, Attempts: 3}
	assert.True(t, m.SetPlayerData(1, data))
	data.Percentage = 41
	assert.True(t, m.SetPlayerData(1, data))
	assert.False(t, m.SetPlayerData(2, data))

	meta := types.PlayerMetadata{LocalBest: 77, Attempts: 3}
	assert.True(t, m.SetPlayerMetadata(1, meta))
	assert.False(t, m.SetPlayerMetadata(2, meta))

	p, _ := m.Player(1)
	assert.Equal(t, types.AssociatedPlayerData{AccountID: 1, Data: data}, p.Data)
	assert.Equal(t, types.AssociatedPlayerMetadata{AccountID: 1, Data: meta}, p.Meta)
}

func TestBroadcastExcludingRequester(t *testing.T) {
	const a, b, c = 11, 12, 13
	m := newManagerWith(t, a, b, c)
	for _, id := range []int32{a, b, c} {
		m.AddToLevel(5, id)
		m.SetPlayerData(id, types.PlayerData{Attempts: id})
	}

	data, budget, written := levelData(m, 5, b, nil)
	assert.Equal(t, 2, budget)
	assert.Equal(t, 2, written)

	recs := decodeLevelData(t, data)
	require.Len(t, recs, 2)
	assert.Equal(t, int32(a), recs[0].AccountID)
	assert.Equal(t, int32(c), recs[1].AccountID)
	assert.Equal(t, int32(c), recs[1].Data.Attempts)
}

func TestCountFixupWhenRosterShrinks(t *testing.T) {
	m := newManagerWith(t, 1, 2, 3, 4, 5)
	for id := int32(1); id <= 5; id++ {
		m.AddToLevel(3, id)
	}

	data, budget, written := levelData(m, 3, 1, func() {
		m.RemoveFromLevel(3, 2)
		m.RemovePlayer(4)
	})
	assert.Equal(t, 4, budget)
	assert.Equal(t, 2, written)
	assert.Len(t, data, packets.ListSize(written, types.SizeAssociatedPlayerData))

	recs := decodeLevelData(t, data)
	require.Len(t, recs, 2)
	assert.Equal(t, int32(3), recs[0].AccountID)
	assert.Equal(t, int32(5), recs[1].AccountID)
}

func TestBudgetHoldsUnderConcurrentJoins(t *testing.T) {
	const first, total = 10, 200
	ids := make([]int32, total)
	for i := range ids {
		ids[i] = int32(i + 1)
	}
	m := newManagerWith(t, ids...)
	for _, id := range ids[:first] {
		m.AddToLevel(1, id)
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for _, id := range ids[first:] {
		wg.Add(1)
		go func(id int32) {
			defer wg.Done()
			<-start
			m.AddToLevel(1, id)
		}(id)
	}

	for i := 0; i < 20; i++ {
		require.NotPanics(t, func() {
			data, budget, written := levelData(m, 1, 1, func() {
				if i == 0 {
					close(start)
				}
			})
			assert.LessOrEqual(t, written, budget)
			assert.Len(t, decodeLevelData(t, data), written)
		})
	}
	wg.Wait()

	n, _ := m.PlayerCountOnLevel(1)
	assert.Equal(t, total, n)
}

func TestPlayersOnLevelAndCounts(t *testing.T) {
	m := newManagerWith(t, 1, 2, 3)
	m.AddToLevel(7, 1)
	m.AddToLevel(7, 2)
	m.AddToLevel(8, 3)

	assert.Equal(t, []int32{2}, m.PlayersOnLevel(7, 1))
	assert.Equal(t, []int32{1, 2}, m.PlayersOnLevel(7, 0))
	assert.Empty(t, m.PlayersOnLevel(9, 0))

	assert.Equal(t, []types.LevelEntry{
		{LevelID: 8, Count: 1},
		{LevelID: 9, Count: 0},
		{LevelID: 7, Count: 2},
	}, m.LevelPlayerCounts([]int32{8, 9, 7}))
}

func TestForEachVariants(t *testing.T) {
	m := newManagerWith(t, 1, 2, 3)
	m.AddToLevel(7, 1)
	m.AddToLevel(7, 2)
	m.AddToLevel(8, 3)

	collect := func(out *[]int32) VisitFunc {
		return func(p *PlayerEntry, count int, w buffer.Writer) bool {
			*out = append(*out, p.Account.AccountID)
			w.WriteI32(p.Account.AccountID)
			return true
		}
	}

	var listed []int32
	buf := buffer.NewByteBuffer(0)
	assert.Equal(t, 2, m.ForEachPlayer([]int32{3, 42, 1}, collect(&listed), buf))
	assert.Equal(t, []int32{3, 1}, listed)
	assert.Equal(t, 8, buf.Len())

	var all []int32
	assert.Equal(t, 3, m.ForEachAllPlayers(collect(&all), buffer.NewByteBuffer(0)))
	assert.ElementsMatch(t, []int32{1, 2, 3}, all)

	levels := map[int32]uint16{}
	n := m.ForEachLevel(func(e types.LevelEntry, count int, w buffer.Writer) bool {
		levels[e.LevelID] = e.Count
		e.Encode(w)
		return true
	}, buffer.NewByteBuffer(0))
	assert.Equal(t, 2, n)
	assert.Equal(t, map[int32]uint16{7: 2, 8: 1}, levels)

	// a declining visitor writes nothing
	assert.Zero(t, m.ForEachPlayerOnLevel(7, func(*PlayerEntry, int, buffer.Writer) bool { return false }, buf))
}

func TestServerState(t *testing.T) {
	s := NewServerState()
	require.NotNil(t, s.Players)
	assert.Zero(t, s.Players.PlayerCount())
}
