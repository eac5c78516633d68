// Package state holds the shared registry of connected players and the levels
// they are playing.
//
// Handlers follow a snapshot-then-fixup pattern when streaming records out of the
// registry: they read a count, allocate an exact buffer for it outside the lock,
// then fill it under the lock with a visit callback that refuses to exceed the
// count. The lock is never held across allocation or I/O.
package state

import (
	"slices"
	"sync"

	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/types"
)

// PlayerEntry is the registry record of one authenticated account.
type PlayerEntry struct {
	Account types.PlayerAccountData
	Data    types.AssociatedPlayerData
	Meta    types.AssociatedPlayerMetadata
	// LevelID is the level the player is on, 0 for none.
	LevelID int32
}

// VisitFunc is called under the registry lock for each candidate record. count is
// the number of records written so far. It returns whether it wrote a record.
// p must not be retained.
type VisitFunc func(p *PlayerEntry, count int, w buffer.Writer) bool

// LevelVisitFunc is the per-level counterpart of VisitFunc.
type LevelVisitFunc func(e types.LevelEntry, count int, w buffer.Writer) bool

// PlayerManager maps accounts to player records and levels to rosters. A record's
// LevelID always names the only roster that contains it.
type PlayerManager struct {
	mu      sync.Mutex
	players map[int32]*PlayerEntry
	// levels holds account ids in join order. Empty rosters are removed.
	levels map[int32][]int32
}

func NewPlayerManager() *PlayerManager {
	return &PlayerManager{
		players: make(map[int32]*PlayerEntry),
		levels:  make(map[int32][]int32),
	}
}

// CreatePlayer registers account. An existing record keeps its latest data but
// is taken off its level and gets the new account data. Reports whether the
// record is new.
func (m *PlayerManager) CreatePlayer(account types.PlayerAccountData) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.players[account.AccountID]; ok {
		if p.LevelID != 0 {
			m.removeFromRoster(p.LevelID, account.AccountID)
			p.LevelID = 0
		}
		p.Account = account
		return false
	}
	m.players[account.AccountID] = &PlayerEntry{
		Account: account,
		Data:    types.AssociatedPlayerData{AccountID: account.AccountID},
		Meta:    types.AssociatedPlayerMetadata{AccountID: account.AccountID},
	}
	return true
}

// RemovePlayer drops the record and takes the account off its level.
func (m *PlayerManager) RemovePlayer(accountID int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[accountID]
	if !ok {
		return false
	}
	if p.LevelID != 0 {
		m.removeFromRoster(p.LevelID, accountID)
	}
	delete(m.players, accountID)
	return true
}

// Player returns a copy of the record.
func (m *PlayerManager) Player(accountID int32) (PlayerEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[accountID]
	if !ok {
		return PlayerEntry{}, false
	}
	return *p, true
}

func (m *PlayerManager) PlayerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.players)
}

// LevelCount returns the number of levels with at least one player.
func (m *PlayerManager) LevelCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.levels)
}

// AddToLevel puts the account on levelID, taking it off any previous level.
// Repeated calls are no-ops. It fails when the account has no record or levelID is 0.
func (m *PlayerManager) AddToLevel(levelID, accountID int32) bool {
	if levelID == 0 {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[accountID]
	if !ok {
		return false
	}
	if p.LevelID == levelID {
		return true
	}
	if p.LevelID != 0 {
		m.removeFromRoster(p.LevelID, accountID)
	}
	m.levels[levelID] = append(m.levels[levelID], accountID)
	p.LevelID = levelID
	return true
}

// RemoveFromLevel takes the account off levelID. Removing an absent member is a no-op.
func (m *PlayerManager) RemoveFromLevel(levelID, accountID int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeFromRoster(levelID, accountID)
	if p, ok := m.players[accountID]; ok && p.LevelID == levelID {
		p.LevelID = 0
	}
}

func (m *PlayerManager) removeFromRoster(levelID, accountID int32) {
	roster, ok := m.levels[levelID]
	if !ok {
		return
	}
	i := slices.Index(roster, accountID)
	if i < 0 {
		return
	}
	roster = slices.Delete(roster, i, i+1)
	if len(roster) == 0 {
		delete(m.levels, levelID)
		return
	}
	m.levels[levelID] = roster
}

// SetPlayerData stores the latest movement snapshot. Last write wins.
func (m *PlayerManager) SetPlayerData(accountID int32, data types.PlayerData) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[accountID]
	if !ok {
		return false
	}
	p.Data = types.AssociatedPlayerData{AccountID: accountID, Data: data}
	return true
}

// SetPlayerMetadata stores the latest metadata. Last write wins.
func (m *PlayerManager) SetPlayerMetadata(accountID int32, meta types.PlayerMetadata) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[accountID]
	if !ok {
		return false
	}
	p.Meta = types.AssociatedPlayerMetadata{AccountID: accountID, Data: meta}
	return true
}

// PlayerCountOnLevel returns the roster size. ok is false when nobody is on the level.
func (m *PlayerManager) PlayerCountOnLevel(levelID int32) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	roster, ok := m.levels[levelID]
	return len(roster), ok
}

// PlayersOnLevel copies the roster, leaving out exclude.
func (m *PlayerManager) PlayersOnLevel(levelID, exclude int32) []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	roster := m.levels[levelID]
	out := make([]int32, 0, len(roster))
	for _, id := range roster {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

// LevelPlayerCounts returns one entry per requested level, in request order.
// Untracked levels report 0.
func (m *PlayerManager) LevelPlayerCounts(levelIDs []int32) []types.LevelEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.LevelEntry, len(levelIDs))
	for i, id := range levelIDs {
		out[i] = types.LevelEntry{LevelID: id, Count: types.ClampCount(len(m.levels[id]))}
	}
	return out
}

// ForEachPlayerOnLevel visits the roster in join order and returns the number of
// records written.
func (m *PlayerManager) ForEachPlayerOnLevel(levelID int32, visit VisitFunc, w buffer.Writer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, id := range m.levels[levelID] {
		if p, ok := m.players[id]; ok && visit(p, count, w) {
			count++
		}
	}
	return count
}

// ForEachPlayer visits the listed accounts in order, skipping unknown ones.
func (m *PlayerManager) ForEachPlayer(accountIDs []int32, visit VisitFunc, w buffer.Writer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, id := range accountIDs {
		if p, ok := m.players[id]; ok && visit(p, count, w) {
			count++
		}
	}
	return count
}

// ForEachAllPlayers visits every registered player in no particular order.
func (m *PlayerManager) ForEachAllPlayers(visit VisitFunc, w buffer.Writer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, p := range m.players {
		if visit(p, count, w) {
			count++
		}
	}
	return count
}

// ForEachLevel visits every level that has players, in no particular order.
func (m *PlayerManager) ForEachLevel(visit LevelVisitFunc, w buffer.Writer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for id, roster := range m.levels {
		if visit(types.LevelEntry{LevelID: id, Count: types.ClampCount(len(roster))}, count, w) {
			count++
		}
	}
	return count
}
