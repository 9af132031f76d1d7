package services

import (
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mattbolt/math-hack/internal/models"
	"github.com/mattbolt/math-hack/internal/storage"
	"github.com/mattbolt/math-hack/internal/ws"
)

// Broadcaster is the outbound side of the session coordinator. ws.Hub
// satisfies it; tests substitute a recorder.
type Broadcaster interface {
	Broadcast(sessionID uint, message ws.WSMessage)
	SendToPlayer(sessionID uint, playerID string, message ws.WSMessage)
}

const (
	creditRewardBase     = 10
	creditRewardPerLevel = 5
	skipPenalty          = 5
	correctStreakToBump  = 5
	wrongStreakToDrop    = 3

	EndReasonTime  = "time"
	EndReasonEnded = "ended"
)

// sessionRuntime is the live state of one session that never touches the
// store: effects, duels, last-issued questions, the game log and the
// game-duration timer. Its mutex serializes every read-modify-write a
// handler performs for the session, store round-trips included, so no two
// interleaved messages can lose an update.
type sessionRuntime struct {
	mu        sync.Mutex
	effects   *EffectTracker
	duels     *DuelCoordinator
	gameLog   *GameLog
	questions map[string]models.Question
	gameTimer *time.Timer
}

// GameManager orchestrates every session: it routes inbound messages to the
// stores, applies the game rules and emits the resulting broadcasts.
type GameManager struct {
	store             storage.Store
	broadcaster       Broadcaster
	skipCountsAsWrong bool

	mu       sync.Mutex
	runtimes map[uint]*sessionRuntime
}

func NewGameManager(store storage.Store, broadcaster Broadcaster, skipCountsAsWrong bool) *GameManager {
	return &GameManager{
		store:             store,
		broadcaster:       broadcaster,
		skipCountsAsWrong: skipCountsAsWrong,
		runtimes:          make(map[uint]*sessionRuntime),
	}
}

func newSessionRuntime() *sessionRuntime {
	return &sessionRuntime{
		effects:   NewEffectTracker(),
		duels:     NewDuelCoordinator(),
		gameLog:   NewGameLog(),
		questions: make(map[string]models.Question),
	}
}

func (m *GameManager) runtime(sessionID uint) *sessionRuntime {
	m.mu.Lock()
	defer m.mu.Unlock()

	rt, ok := m.runtimes[sessionID]
	if !ok {
		rt = newSessionRuntime()
		m.runtimes[sessionID] = rt
	}
	return rt
}

// runtimeFor resolves the runtime for a session named by a caller. Unknown
// session IDs never allocate coordinator state, and a finished session gets a
// throwaway runtime so the map only ever holds live sessions.
func (m *GameManager) runtimeFor(sessionID uint) (*sessionRuntime, error) {
	m.mu.Lock()
	rt, ok := m.runtimes[sessionID]
	m.mu.Unlock()
	if ok {
		return rt, nil
	}

	session, err := m.store.GetSession(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.Status == models.SessionStatusFinished {
		return newSessionRuntime(), nil
	}
	return m.runtime(sessionID), nil
}

func (m *GameManager) dropRuntime(sessionID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runtimes, sessionID)
}

// CreateSession creates a session and its host player.
func (m *GameManager) CreateSession(hostID, hostName string, maxPlayers, gameDuration int) (*models.GameSession, *models.Player, error) {
	if maxPlayers <= 0 {
		maxPlayers = 4
	}
	if gameDuration <= 0 {
		gameDuration = 15
	}

	code, err := m.generateSessionCode()
	if err != nil {
		return nil, nil, err
	}

	session := &models.GameSession{
		Code:         code,
		HostID:       hostID,
		Status:       models.SessionStatusWaiting,
		MaxPlayers:   maxPlayers,
		GameDuration: gameDuration,
	}
	if err := m.store.CreateSession(session); err != nil {
		return nil, nil, err
	}

	host := newPlayer(session.ID, hostID, hostName, true)
	if err := m.store.CreatePlayer(host); err != nil {
		return nil, nil, err
	}

	rt := m.runtime(session.ID)
	rt.mu.Lock()
	rt.gameLog.Append(models.GameLogEntry{
		Kind:       models.LogPlayerJoin,
		PlayerID:   hostID,
		PlayerName: hostName,
		Details:    hostName + " created the game",
	})
	rt.mu.Unlock()

	log.Printf("game: session %d created with code %s by %s", session.ID, code, hostName)
	return session, host, nil
}

// JoinSession adds a player to a waiting session by join code.
func (m *GameManager) JoinSession(code, playerID, name string) (*models.GameSession, *models.Player, error) {
	session, err := m.store.GetSessionByCode(strings.ToUpper(code))
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}

	rt, err := m.runtimeFor(session.ID)
	if err != nil {
		return nil, nil, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if session.Status != models.SessionStatusWaiting {
		return nil, nil, ErrAlreadyStarted
	}

	players, err := m.store.PlayersBySession(session.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(players) >= session.MaxPlayers {
		return nil, nil, ErrSessionFull
	}
	for _, p := range players {
		if p.PlayerID == playerID {
			return nil, nil, ErrAlreadyJoined
		}
	}

	player := newPlayer(session.ID, playerID, name, false)
	if err := m.store.CreatePlayer(player); err != nil {
		return nil, nil, err
	}

	rt.gameLog.Append(models.GameLogEntry{
		Kind:       models.LogPlayerJoin,
		PlayerID:   playerID,
		PlayerName: name,
		Details:    name + " joined the game",
	})

	roster, _ := m.store.PlayersBySession(session.ID)
	m.broadcaster.Broadcast(session.ID, ws.WSMessage{Type: MsgPlayerJoined, Data: PlayerJoinedPayload{Players: roster}})
	m.broadcastLog(rt, session.ID)

	log.Printf("game: %s joined session %d", name, session.ID)
	return session, player, nil
}

// HandleJoinSession answers a connection's joinSession binding: it returns
// the state snapshot for the caller. The router sends the snapshot first and
// then calls BroadcastRoster so the session sees the join after the joiner
// has its state.
func (m *GameManager) HandleJoinSession(sessionID uint, playerID string) (*GameStatePayload, error) {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return nil, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := m.store.GetSession(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	players, err := m.store.PlayersBySession(sessionID)
	if err != nil {
		return nil, err
	}

	state := &GameStatePayload{Session: session, Players: players}
	if q, ok := rt.questions[playerID]; ok {
		redacted := q.Redacted()
		state.CurrentQuestion = &redacted
	}
	return state, nil
}

// BroadcastRoster pushes the current roster to every connection in the
// session.
func (m *GameManager) BroadcastRoster(sessionID uint) error {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	players, err := m.store.PlayersBySession(sessionID)
	if err != nil {
		return err
	}
	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerJoined, Data: PlayerJoinedPayload{Players: players}})
	return nil
}

// GetState is the REST snapshot of a session. When playerID is non-empty the
// snapshot includes that player's current question.
func (m *GameManager) GetState(sessionID uint, playerID string) (*GameStatePayload, error) {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return nil, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := m.store.GetSession(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	players, err := m.store.PlayersBySession(sessionID)
	if err != nil {
		return nil, err
	}

	state := &GameStatePayload{Session: session, Players: players}
	if playerID != "" {
		if q, ok := rt.questions[playerID]; ok {
			redacted := q.Redacted()
			state.CurrentQuestion = &redacted
		}
	}
	return state, nil
}

// ToggleReady flips a player's ready flag while the session is waiting.
func (m *GameManager) ToggleReady(sessionID uint, playerID string) error {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := m.store.GetSession(sessionID)
	if err != nil {
		return ErrSessionNotFound
	}
	if session.Status != models.SessionStatusWaiting {
		return ErrAlreadyStarted
	}

	player, err := m.store.GetPlayer(sessionID, playerID)
	if err != nil {
		return ErrPlayerNotFound
	}
	player.IsReady = !player.IsReady
	if err := m.store.UpdatePlayer(player); err != nil {
		return err
	}

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *player}})
	return nil
}

// StartGame moves a waiting session to active, arms the game-duration timer
// and deals every player their first question.
func (m *GameManager) StartGame(sessionID uint, playerID string) error {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := m.store.GetSession(sessionID)
	if err != nil {
		return ErrSessionNotFound
	}
	if session.Status != models.SessionStatusWaiting {
		return ErrAlreadyStarted
	}
	if session.HostID != playerID {
		return ErrNotHost
	}

	players, err := m.store.PlayersBySession(sessionID)
	if err != nil {
		return err
	}
	if len(players) < 2 {
		return ErrNotEnoughPlayers
	}
	for _, p := range players {
		if !p.IsHost && !p.IsReady {
			return ErrPlayersNotReady
		}
	}

	now := time.Now()
	session.Status = models.SessionStatusActive
	session.GameStartTime = &now
	if err := m.store.UpdateSession(session); err != nil {
		return err
	}

	rt.gameLog.Append(models.GameLogEntry{
		Kind:     models.LogGameStart,
		PlayerID: playerID,
		Details:  "The game has started",
	})

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgGameStarted, Data: GameStartedPayload{Session: session}})
	m.broadcastLog(rt, sessionID)

	for _, p := range players {
		m.issueQuestion(rt, session, p.PlayerID, p.DifficultyLevel)
	}
	if err := m.store.UpdateSession(session); err != nil {
		return err
	}

	rt.gameTimer = time.AfterFunc(time.Duration(session.GameDuration)*time.Minute, func() {
		if err := m.EndSession(sessionID, EndReasonTime); err != nil {
			log.Printf("game: ending session %d: %v", sessionID, err)
		}
	})

	log.Printf("game: session %d started with %d players", sessionID, len(players))
	return nil
}

// SubmitAnswer grades a player's answer against the question the coordinator
// issued to them, applies rewards and difficulty adaptation, advances any
// duel they participate in, and deals the next question.
func (m *GameManager) SubmitAnswer(sessionID uint, playerID string, answer int) error {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, player, err := m.activePlayer(sessionID, playerID)
	if err != nil {
		return err
	}
	if rt.effects.IsActive(playerID, models.EffectFreeze, time.Now()) {
		return ErrPlayerFrozen
	}

	question, ok := rt.questions[playerID]
	if !ok {
		return ErrNoActiveQuestion
	}

	isCorrect := answer == question.Answer
	if isCorrect {
		applyCorrectAnswer(player)
	} else {
		applyMiss(player, false, m.skipCountsAsWrong)
	}
	if err := m.store.UpdatePlayer(player); err != nil {
		return err
	}

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *player}})
	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgAnswerSubmitted, Data: AnswerSubmittedPayload{
		PlayerID:  playerID,
		IsCorrect: isCorrect,
		Player:    *player,
	}})

	if isCorrect {
		if duel, decided := rt.duels.Advance(playerID); duel != nil {
			m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgHackProgress, Data: HackProgressPayload{
				HackerID:         duel.HackerID,
				TargetID:         duel.TargetID,
				AttackerProgress: duel.AttackerProgress,
				DefenderProgress: duel.DefenderProgress,
			}})
			if decided {
				if err := m.resolveDuel(rt, sessionID, duel); err != nil {
					return err
				}
			}
		}
	}

	m.issueQuestion(rt, session, playerID, player.DifficultyLevel)
	return m.store.UpdateSession(session)
}

// SkipQuestion charges the flat skip penalty, advances the wrong streak and
// deals a fresh question. Skips never touch the correct/wrong answer
// counters unless the skip-counts-as-wrong policy is enabled.
func (m *GameManager) SkipQuestion(sessionID uint, playerID string) error {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, player, err := m.activePlayer(sessionID, playerID)
	if err != nil {
		return err
	}
	if rt.effects.IsActive(playerID, models.EffectFreeze, time.Now()) {
		return ErrPlayerFrozen
	}
	if _, ok := rt.questions[playerID]; !ok {
		return ErrNoActiveQuestion
	}

	player.Credits -= skipPenalty
	if player.Credits < 0 {
		player.Credits = 0
	}
	player.QuestionsSkipped++
	applyMiss(player, true, m.skipCountsAsWrong)

	if err := m.store.UpdatePlayer(player); err != nil {
		return err
	}

	rt.gameLog.Append(models.GameLogEntry{
		Kind:         models.LogCreditChange,
		PlayerID:     playerID,
		PlayerName:   player.Name,
		Details:      player.Name + " skipped a question",
		CreditChange: -skipPenalty,
	})

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *player}})
	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgQuestionSkipped, Data: QuestionSkippedPayload{
		PlayerID: playerID,
		Player:   *player,
	}})
	m.broadcastLog(rt, sessionID)

	m.issueQuestion(rt, session, playerID, player.DifficultyLevel)
	return m.store.UpdateSession(session)
}

// UsePowerUp debits the caster and applies the requested ability: a timed
// effect, a shield, or a hack duel.
func (m *GameManager) UsePowerUp(sessionID uint, playerID, powerUpType, targetID string) error {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	_, player, err := m.activePlayer(sessionID, playerID)
	if err != nil {
		return err
	}

	powerUp, ok := models.PowerUpByEffect(powerUpType)
	if !ok {
		return ErrInvalidPowerUp
	}
	if player.Credits < powerUp.Cost {
		return ErrInsufficientCredits
	}

	switch powerUp.Effect {
	case models.EffectHack:
		return m.startHack(rt, sessionID, player, targetID, powerUp)
	case models.EffectShield:
		if targetID != "" && targetID != playerID {
			return ErrInvalidTarget
		}
		return m.applyShield(rt, sessionID, player, powerUp)
	default:
		return m.applyEffect(rt, sessionID, player, targetID, powerUp)
	}
}

func (m *GameManager) startHack(rt *sessionRuntime, sessionID uint, hacker *models.Player, targetID string, powerUp models.PowerUp) error {
	if targetID == "" || targetID == hacker.PlayerID {
		return ErrInvalidTarget
	}
	target, err := m.store.GetPlayer(sessionID, targetID)
	if err != nil {
		return ErrPlayerNotFound
	}
	if rt.duels.ByParticipant(hacker.PlayerID) != nil || rt.duels.ByParticipant(targetID) != nil {
		return ErrDuelInProgress
	}

	hacker.Credits -= powerUp.Cost
	hacker.HackAttempts++
	if err := m.store.UpdatePlayer(hacker); err != nil {
		return err
	}

	duel, err := rt.duels.Start(hacker.PlayerID, targetID)
	if err != nil {
		return err
	}

	rt.gameLog.Append(models.GameLogEntry{
		Kind:         models.LogHackStart,
		PlayerID:     hacker.PlayerID,
		PlayerName:   hacker.Name,
		TargetID:     target.PlayerID,
		TargetName:   target.Name,
		Details:      hacker.Name + " is hacking " + target.Name,
		CreditChange: -powerUp.Cost,
	})

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *hacker}})
	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgHackStarted, Data: HackStartedPayload{
		HackerID:   duel.HackerID,
		TargetID:   duel.TargetID,
		HackerName: hacker.Name,
		TargetName: target.Name,
	}})
	m.broadcastLog(rt, sessionID)

	log.Printf("game: %s started hacking %s in session %d", hacker.Name, target.Name, sessionID)
	return nil
}

func (m *GameManager) applyShield(rt *sessionRuntime, sessionID uint, player *models.Player, powerUp models.PowerUp) error {
	player.Credits -= powerUp.Cost
	if err := m.store.UpdatePlayer(player); err != nil {
		return err
	}

	rt.effects.ApplyShield(player.PlayerID, time.Duration(powerUp.Duration)*time.Second, time.Now())

	rt.gameLog.Append(models.GameLogEntry{
		Kind:         models.LogPowerUp,
		PlayerID:     player.PlayerID,
		PlayerName:   player.Name,
		Details:      player.Name + " activated a shield",
		CreditChange: -powerUp.Cost,
	})

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *player}})
	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPowerUpUsed, Data: PowerUpUsedPayload{
		Effect:   powerUp.Effect,
		TargetID: player.PlayerID,
		Duration: powerUp.Duration,
	}})
	m.broadcastLog(rt, sessionID)
	return nil
}

func (m *GameManager) applyEffect(rt *sessionRuntime, sessionID uint, caster *models.Player, targetID string, powerUp models.PowerUp) error {
	if targetID == "" || targetID == caster.PlayerID {
		return ErrInvalidTarget
	}
	target, err := m.store.GetPlayer(sessionID, targetID)
	if err != nil {
		return ErrPlayerNotFound
	}

	// A shielded target suppresses the effect but the caster pays either way.
	caster.Credits -= powerUp.Cost
	if err := m.store.UpdatePlayer(caster); err != nil {
		return err
	}
	applied := rt.effects.Apply(targetID, powerUp.Effect, time.Duration(powerUp.Duration)*time.Second, time.Now())

	detail := caster.Name + " used " + powerUp.Name + " on " + target.Name
	if !applied {
		detail += " (blocked by shield)"
	}
	rt.gameLog.Append(models.GameLogEntry{
		Kind:         models.LogPowerUp,
		PlayerID:     caster.PlayerID,
		PlayerName:   caster.Name,
		TargetID:     target.PlayerID,
		TargetName:   target.Name,
		Details:      detail,
		CreditChange: -powerUp.Cost,
	})

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *caster}})
	if applied {
		m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPowerUpUsed, Data: PowerUpUsedPayload{
			Effect:   powerUp.Effect,
			TargetID: targetID,
			Duration: powerUp.Duration,
		}})
	}
	m.broadcastLog(rt, sessionID)
	return nil
}

// resolveDuel settles a decided duel: an attacker win steals a random 20-50%
// share of the target's credits; a defender win moves nothing.
func (m *GameManager) resolveDuel(rt *sessionRuntime, sessionID uint, duel *Duel) error {
	defer rt.duels.Remove(duel.ID)

	hacker, err := m.store.GetPlayer(sessionID, duel.HackerID)
	if err != nil {
		return err
	}
	target, err := m.store.GetPlayer(sessionID, duel.TargetID)
	if err != nil {
		return err
	}

	attackerWon := duel.AttackerProgress >= DuelWinThreshold
	stolen := 0
	if attackerWon {
		stolen = int(float64(target.Credits) * (0.2 + rand.Float64()*0.3))
		if stolen > target.Credits {
			stolen = target.Credits
		}
		target.Credits -= stolen
		hacker.Credits += stolen
		if err := m.store.UpdatePlayer(target); err != nil {
			return err
		}
		if err := m.store.UpdatePlayer(hacker); err != nil {
			return err
		}

		rt.gameLog.Append(models.GameLogEntry{
			Kind:         models.LogHackComplete,
			PlayerID:     hacker.PlayerID,
			PlayerName:   hacker.Name,
			TargetID:     target.PlayerID,
			TargetName:   target.Name,
			Details:      hacker.Name + " hacked " + target.Name,
			CreditChange: stolen,
		})

		m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *target}})
		m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgPlayerUpdated, Data: PlayerUpdatedPayload{Player: *hacker}})
	} else {
		rt.gameLog.Append(models.GameLogEntry{
			Kind:       models.LogHackComplete,
			PlayerID:   hacker.PlayerID,
			PlayerName: hacker.Name,
			TargetID:   target.PlayerID,
			TargetName: target.Name,
			Details:    target.Name + " fended off " + hacker.Name,
		})
	}

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgHackCompleted, Data: HackCompletedPayload{
		HackerID:      duel.HackerID,
		TargetID:      duel.TargetID,
		Success:       attackerWon,
		CreditsStolen: stolen,
	}})
	m.broadcastLog(rt, sessionID)

	log.Printf("game: hack by %s on %s resolved (success=%t, stolen=%d)", hacker.Name, target.Name, attackerWon, stolen)
	return nil
}

// EndSession moves a session to finished, cancels its timer, clears live
// state and broadcasts the final leaderboard. It is idempotent.
func (m *GameManager) EndSession(sessionID uint, reason string) error {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := m.store.GetSession(sessionID)
	if err != nil {
		return ErrSessionNotFound
	}
	if session.Status == models.SessionStatusFinished {
		return nil
	}

	session.Status = models.SessionStatusFinished
	if err := m.store.UpdateSession(session); err != nil {
		return err
	}

	if rt.gameTimer != nil {
		rt.gameTimer.Stop()
		rt.gameTimer = nil
	}

	players, err := m.store.PlayersBySession(sessionID)
	if err != nil {
		return err
	}
	sort.Slice(players, func(a, b int) bool {
		return players[a].Credits > players[b].Credits
	})

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgGameEnded, Data: GameEndedPayload{
		Players: players,
		Reason:  reason,
	}})

	m.dropRuntime(sessionID)
	log.Printf("game: session %d ended (%s)", sessionID, reason)
	return nil
}

// HandleDisconnect forfeits any duel the player participates in. The
// connected opponent takes the win; no credits move.
func (m *GameManager) HandleDisconnect(sessionID uint, playerID string) {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	duel := rt.duels.ByParticipant(playerID)
	if duel == nil {
		return
	}
	rt.duels.Remove(duel.ID)

	rt.gameLog.Append(models.GameLogEntry{
		Kind:     models.LogHackComplete,
		PlayerID: duel.HackerID,
		TargetID: duel.TargetID,
		Details:  "Hack cancelled: a participant disconnected",
	})

	m.broadcaster.Broadcast(sessionID, ws.WSMessage{Type: MsgHackCompleted, Data: HackCompletedPayload{
		HackerID:      duel.HackerID,
		TargetID:      duel.TargetID,
		Success:       duel.TargetID == playerID,
		CreditsStolen: 0,
	}})
	m.broadcastLog(rt, sessionID)

	log.Printf("game: duel %s forfeited after %s disconnected", duel.ID, playerID)
}

// StartSweeper prunes expired effect entries on a low-frequency tick so the
// maps stay bounded over long sessions. Returns a stop function.
func (m *GameManager) StartSweeper(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				m.sweepEffects(time.Now())
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

func (m *GameManager) sweepEffects(now time.Time) {
	m.mu.Lock()
	runtimes := make([]*sessionRuntime, 0, len(m.runtimes))
	for _, rt := range m.runtimes {
		runtimes = append(runtimes, rt)
	}
	m.mu.Unlock()

	for _, rt := range runtimes {
		rt.mu.Lock()
		rt.effects.Sweep(now)
		rt.mu.Unlock()
	}
}

// ActiveEffects reports the effect kinds currently applied to a player.
func (m *GameManager) ActiveEffects(sessionID uint, playerID string) []string {
	rt, err := m.runtimeFor(sessionID)
	if err != nil {
		return nil
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.effects.ActiveKinds(playerID, time.Now())
}

func (m *GameManager) issueQuestion(rt *sessionRuntime, session *models.GameSession, playerID string, difficulty int) {
	question := GenerateQuestion(difficulty)
	rt.questions[playerID] = question
	session.QuestionNumber++

	m.broadcaster.SendToPlayer(session.ID, playerID, ws.WSMessage{
		Type: MsgNewQuestion,
		Data: NewQuestionPayload{Question: question.Redacted()},
	})
}

func (m *GameManager) activePlayer(sessionID uint, playerID string) (*models.GameSession, *models.Player, error) {
	session, err := m.store.GetSession(sessionID)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}
	if session.Status != models.SessionStatusActive {
		return nil, nil, ErrGameNotActive
	}
	player, err := m.store.GetPlayer(sessionID, playerID)
	if err != nil {
		return nil, nil, ErrPlayerNotFound
	}
	return session, player, nil
}

func (m *GameManager) broadcastLog(rt *sessionRuntime, sessionID uint) {
	m.broadcaster.Broadcast(sessionID, ws.WSMessage{
		Type: MsgGameLogUpdated,
		Data: GameLogPayload{GameLog: rt.gameLog.Recent(GameLogWindow)},
	})
}

func newPlayer(sessionID uint, playerID, name string, isHost bool) *models.Player {
	return &models.Player{
		SessionID:            sessionID,
		PlayerID:             playerID,
		Name:                 name,
		DifficultyLevel:      MinDifficulty,
		MaxDifficultyReached: MinDifficulty,
		IsHost:               isHost,
		JoinedAt:             time.Now(),
	}
}

// applyCorrectAnswer credits the reward for the player's current level, then
// advances the streak; five straight correct answers at one level bump the
// level and restart the streak, so the reward always uses the pre-bump level.
func applyCorrectAnswer(player *models.Player) {
	player.Credits += creditRewardBase + creditRewardPerLevel*player.DifficultyLevel
	player.CorrectAnswers++
	player.OverallConsecutiveCorrect++
	player.ConsecutiveCorrect++
	player.ConsecutiveWrong = 0

	if player.ConsecutiveCorrect >= correctStreakToBump {
		if player.DifficultyLevel < MaxDifficulty {
			player.DifficultyLevel++
		}
		if player.DifficultyLevel > player.MaxDifficultyReached {
			player.MaxDifficultyReached = player.DifficultyLevel
		}
		player.ConsecutiveCorrect = 0
	}
}

// applyMiss advances the wrong streak for an incorrect answer or a skip.
// Three straight misses drop the level (floor 1) and restart the streak.
func applyMiss(player *models.Player, isSkip, skipCountsAsWrong bool) {
	if !isSkip || skipCountsAsWrong {
		player.WrongAnswers++
	}
	player.ConsecutiveWrong++
	player.ConsecutiveCorrect = 0
	player.OverallConsecutiveCorrect = 0

	if player.ConsecutiveWrong >= wrongStreakToDrop {
		if player.DifficultyLevel > MinDifficulty {
			player.DifficultyLevel--
		}
		player.ConsecutiveWrong = 0
	}
}
