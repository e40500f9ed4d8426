package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"tg-moderator/internal/classifier"
	"tg-moderator/internal/gateway"
)

// fakeClassifier returns a fixed verdict or error
type fakeClassifier struct {
	toxic bool
	err   error
}

func (c *fakeClassifier) Classify(ctx context.Context, text string) (bool, error) {
	return c.toxic, c.err
}

// fakeStore implements ViolationStore with the contract semantics in memory
type logEntry struct {
	userID  int64
	text    string
	isToxic bool
}

type fakeStore struct {
	counts    map[int64]int
	exists    map[int64]bool
	logs      []logEntry
	countErr  error
	recordErr error
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counts: make(map[int64]int),
		exists: make(map[int64]bool),
	}
}

func (s *fakeStore) GetViolationCount(ctx context.Context, userID int64) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.counts[userID], nil
}

func (s *fakeStore) RecordViolation(ctx context.Context, userID int64, username string, isToxic bool) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	if !s.exists[userID] {
		s.exists[userID] = true
		if isToxic {
			s.counts[userID] = 1
		}
		return nil
	}
	if isToxic {
		s.counts[userID]++
	}
	return nil
}

func (s *fakeStore) AppendMessageLog(ctx context.Context, userID int64, username, messageText string, isToxic bool) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	if !s.exists[userID] {
		return errors.New("user record does not exist")
	}
	s.logs = append(s.logs, logEntry{userID: userID, text: messageText, isToxic: isToxic})
	return nil
}

// fakeGateway records every call
type restrictCall struct {
	chatID int64
	userID int64
	until  time.Time
}

type replyCall struct {
	chatID    int64
	messageID int
	text      string
}

type dmCall struct {
	userID int64
	text   string
}

type fakeGateway struct {
	role    gateway.Role
	roleErr error

	restrictErr error
	removeErr   error

	restricts []restrictCall
	restores  []int64
	removals  []int64
	deletions []int
	replies   []replyCall
	dms       []dmCall
}

func (g *fakeGateway) GetMemberRole(ctx context.Context, chatID, userID int64) (gateway.Role, error) {
	if g.roleErr != nil {
		return gateway.RoleMember, g.roleErr
	}
	if g.role == "" {
		return gateway.RoleMember, nil
	}
	return g.role, nil
}

func (g *fakeGateway) Restrict(ctx context.Context, chatID, userID int64, until time.Time) error {
	if g.restrictErr != nil {
		return g.restrictErr
	}
	g.restricts = append(g.restricts, restrictCall{chatID: chatID, userID: userID, until: until})
	return nil
}

func (g *fakeGateway) Restore(ctx context.Context, chatID, userID int64) error {
	g.restores = append(g.restores, userID)
	return nil
}

func (g *fakeGateway) RemoveMember(ctx context.Context, chatID, userID int64) error {
	if g.removeErr != nil {
		return g.removeErr
	}
	g.removals = append(g.removals, userID)
	return nil
}

func (g *fakeGateway) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	g.deletions = append(g.deletions, messageID)
	return nil
}

func (g *fakeGateway) Reply(ctx context.Context, chatID int64, messageID int, text string) error {
	g.replies = append(g.replies, replyCall{chatID: chatID, messageID: messageID, text: text})
	return nil
}

func (g *fakeGateway) DirectMessage(ctx context.Context, userID int64, text string) error {
	g.dms = append(g.dms, dmCall{userID: userID, text: text})
	return nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(gw *fakeGateway, cl *fakeClassifier, store *fakeStore) *Engine {
	e := NewEngine(gw, cl, store, "ru")
	e.now = func() time.Time { return testNow }
	return e
}

func testMessage() IncomingMessage {
	return IncomingMessage{
		ChatID:    123,
		MessageID: 999,
		UserID:    456,
		Username:  "test_user",
		Text:      "Ты ужасен!",
	}
}

func TestProcessMessageCleanPath(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{toxic: false}, store)

	msg := testMessage()
	msg.Text = "Привет, как дела?"
	if err := engine.ProcessMessage(context.Background(), msg); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}

	if store.counts[msg.UserID] != 0 {
		t.Errorf("violation count = %d, want 0", store.counts[msg.UserID])
	}
	if !store.exists[msg.UserID] {
		t.Error("expected user record to be created")
	}
	if len(store.logs) != 1 || store.logs[0].isToxic {
		t.Errorf("logs = %+v, want one non-toxic entry", store.logs)
	}
	if len(gw.restricts)+len(gw.removals)+len(gw.deletions)+len(gw.dms)+len(gw.replies) != 0 {
		t.Error("clean message must not trigger any gateway action")
	}
}

func TestProcessMessageFirstToxicOffense(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{toxic: true}, store)

	msg := testMessage()
	if err := engine.ProcessMessage(context.Background(), msg); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}

	if len(gw.restricts) != 1 {
		t.Fatalf("restrict calls = %d, want 1", len(gw.restricts))
	}
	if got, want := gw.restricts[0].until, testNow.Add(60*time.Second); !got.Equal(want) {
		t.Errorf("restricted until %v, want %v", got, want)
	}
	if len(gw.deletions) != 1 || gw.deletions[0] != msg.MessageID {
		t.Errorf("deletions = %v, want [%d]", gw.deletions, msg.MessageID)
	}
	if store.counts[msg.UserID] != 1 {
		t.Errorf("violation count = %d, want 1", store.counts[msg.UserID])
	}
	if len(store.logs) != 1 || !store.logs[0].isToxic {
		t.Errorf("logs = %+v, want one toxic entry", store.logs)
	}
	if len(gw.replies) != 1 || gw.replies[0].text != "Пользователь test_user замучен на 60 секунд." {
		t.Errorf("reply = %+v, want mute confirmation", gw.replies)
	}
	if len(gw.dms) != 1 || gw.dms[0].text != "Ваше сообщение было удалено, так как оно определено как токсичное. Пожалуйста, соблюдайте правила общения." {
		t.Errorf("dm = %+v, want removal notice", gw.dms)
	}
}

func TestProcessMessageSecondToxicOffenseEscalates(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{toxic: true}, store)

	msg := testMessage()
	store.exists[msg.UserID] = true
	store.counts[msg.UserID] = 1

	if err := engine.ProcessMessage(context.Background(), msg); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}

	if len(gw.restricts) != 1 {
		t.Fatalf("restrict calls = %d, want 1", len(gw.restricts))
	}
	if got, want := gw.restricts[0].until, testNow.Add(300*time.Second); !got.Equal(want) {
		t.Errorf("restricted until %v, want %v", got, want)
	}
	if store.counts[msg.UserID] != 2 {
		t.Errorf("violation count = %d, want 2", store.counts[msg.UserID])
	}
}

func TestProcessMessageKicksAfterFiveViolations(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{toxic: true}, store)

	msg := testMessage()
	store.exists[msg.UserID] = true
	store.counts[msg.UserID] = 5

	if err := engine.ProcessMessage(context.Background(), msg); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}

	if len(gw.removals) != 1 || gw.removals[0] != msg.UserID {
		t.Errorf("removals = %v, want [%d]", gw.removals, msg.UserID)
	}
	if len(gw.restricts) != 0 {
		t.Errorf("restrict calls = %d, want 0 when kicking", len(gw.restricts))
	}
	if store.counts[msg.UserID] != 6 {
		t.Errorf("violation count = %d, want 6", store.counts[msg.UserID])
	}
	if len(gw.replies) != 1 || gw.replies[0].text != "Пользователь test_user был кикнут." {
		t.Errorf("reply = %+v, want kick confirmation", gw.replies)
	}
}

func TestProcessMessageAdminExemption(t *testing.T) {
	for _, role := range []gateway.Role{gateway.RoleAdministrator, gateway.RoleCreator} {
		t.Run(string(role), func(t *testing.T) {
			gw := &fakeGateway{role: role}
			store := newFakeStore()
			engine := newTestEngine(gw, &fakeClassifier{toxic: true}, store)

			msg := testMessage()
			store.exists[msg.UserID] = true
			store.counts[msg.UserID] = 3

			if err := engine.ProcessMessage(context.Background(), msg); err != nil {
				t.Fatalf("ProcessMessage failed: %v", err)
			}

			if len(gw.restricts)+len(gw.removals)+len(gw.deletions) != 0 {
				t.Error("privileged user must not be punished")
			}
			if store.counts[msg.UserID] != 3 {
				t.Errorf("violation count = %d, want unchanged 3", store.counts[msg.UserID])
			}
			if len(store.logs) != 1 || !store.logs[0].isToxic {
				t.Errorf("logs = %+v, want one toxic audit entry", store.logs)
			}
			if len(gw.replies) != 1 || gw.replies[0].text != "Невозможно замутить администратора." {
				t.Errorf("reply = %+v, want admin refusal", gw.replies)
			}
		})
	}
}

func TestProcessMessageClassifierFailure(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	classErr := &classifier.ClassificationError{Provider: "http", Err: errors.New("model server down")}
	engine := newTestEngine(gw, &fakeClassifier{err: classErr}, store)

	err := engine.ProcessMessage(context.Background(), testMessage())
	if err == nil {
		t.Fatal("expected error from failed classification")
	}
	var ce *classifier.ClassificationError
	if !errors.As(err, &ce) {
		t.Errorf("error = %v, want ClassificationError", err)
	}
	if len(store.logs) != 0 || len(store.exists) != 0 {
		t.Error("failed classification must leave the store untouched")
	}
}

func TestProcessMessageGatewayFailureStillRecords(t *testing.T) {
	gw := &fakeGateway{restrictErr: &gateway.ActionError{Op: "restrict", Err: errors.New("not enough rights")}}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{toxic: true}, store)

	msg := testMessage()
	if err := engine.ProcessMessage(context.Background(), msg); err != nil {
		t.Fatalf("ProcessMessage must swallow gateway failures, got: %v", err)
	}

	if store.counts[msg.UserID] != 1 {
		t.Errorf("violation count = %d, want 1 despite failed mute", store.counts[msg.UserID])
	}
	if len(store.logs) != 1 {
		t.Errorf("logs = %d entries, want 1 despite failed mute", len(store.logs))
	}
}

func TestProcessMessageStoreFailureSurfaces(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	store.recordErr = errors.New("connection refused")
	engine := newTestEngine(gw, &fakeClassifier{toxic: true}, store)

	err := engine.ProcessMessage(context.Background(), testMessage())
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StoreError", err)
	}
}

func TestProcessMessageAuditCompleteness(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	toxicCl := &fakeClassifier{toxic: true}
	engine := newTestEngine(gw, toxicCl, store)

	msg := testMessage()
	if err := engine.ProcessMessage(context.Background(), msg); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	toxicCl.toxic = false
	msg.Text = "Извините."
	if err := engine.ProcessMessage(context.Background(), msg); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}

	if len(store.logs) != 2 {
		t.Fatalf("logs = %d entries, want 2", len(store.logs))
	}
	if !store.logs[0].isToxic || store.logs[1].isToxic {
		t.Errorf("logs = %+v, want toxic then clean", store.logs)
	}
}

func TestMuteUserUsesStoredCount(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	target := CommandTarget{UserID: 456, Username: "test_user"}
	store.exists[target.UserID] = true
	store.counts[target.UserID] = 2

	if err := engine.MuteUser(context.Background(), 123, 999, target); err != nil {
		t.Fatalf("MuteUser failed: %v", err)
	}

	if len(gw.restricts) != 1 {
		t.Fatalf("restrict calls = %d, want 1", len(gw.restricts))
	}
	if got, want := gw.restricts[0].until, testNow.Add(1800*time.Second); !got.Equal(want) {
		t.Errorf("restricted until %v, want %v", got, want)
	}
	if store.counts[target.UserID] != 2 {
		t.Errorf("violation count = %d, manual mute must not change it", store.counts[target.UserID])
	}
	if len(gw.replies) != 1 || gw.replies[0].text != "Пользователь test_user замучен на 1800 секунд." {
		t.Errorf("reply = %+v, want mute confirmation", gw.replies)
	}
}

func TestMuteUserRefusesAdmin(t *testing.T) {
	gw := &fakeGateway{role: gateway.RoleAdministrator}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	target := CommandTarget{UserID: 456, Username: "test_user"}
	if err := engine.MuteUser(context.Background(), 123, 999, target); err != nil {
		t.Fatalf("MuteUser failed: %v", err)
	}

	if len(gw.restricts) != 0 {
		t.Error("administrator must not be muted")
	}
	if len(gw.replies) != 1 || gw.replies[0].text != "Невозможно замутить администратора." {
		t.Errorf("reply = %+v, want admin refusal", gw.replies)
	}
}

func TestKickUserWithoutReplyTarget(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	if err := engine.KickUser(context.Background(), 123, 999, nil); err != nil {
		t.Fatalf("KickUser failed: %v", err)
	}

	if len(gw.removals) != 0 {
		t.Error("kick without a reply target must not remove anyone")
	}
	want := "Эта команда должна быть использована в ответ на сообщение пользователя, которого вы хотите кикнуть."
	if len(gw.replies) != 1 || gw.replies[0].text != want {
		t.Errorf("reply = %+v, want no-reply error", gw.replies)
	}
}

func TestKickUserWithReplyTarget(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	target := &CommandTarget{UserID: 789, Username: "bad_user"}
	if err := engine.KickUser(context.Background(), 123, 999, target); err != nil {
		t.Fatalf("KickUser failed: %v", err)
	}

	if len(gw.removals) != 1 || gw.removals[0] != 789 {
		t.Errorf("removals = %v, want [789]", gw.removals)
	}
	if len(gw.replies) != 1 || gw.replies[0].text != "Пользователь bad_user был кикнут." {
		t.Errorf("reply = %+v, want kick confirmation", gw.replies)
	}
}

func TestKickUserRefusesAdmin(t *testing.T) {
	gw := &fakeGateway{role: gateway.RoleAdministrator}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	target := &CommandTarget{UserID: 789, Username: "admin_user"}
	if err := engine.KickUser(context.Background(), 123, 999, target); err != nil {
		t.Fatalf("KickUser failed: %v", err)
	}

	if len(gw.removals) != 0 {
		t.Error("administrator must not be kicked")
	}
	if len(gw.replies) != 1 || gw.replies[0].text != "Невозможно кикнуть администратора." {
		t.Errorf("reply = %+v, want admin refusal", gw.replies)
	}
}

func TestUnmuteUserWithReplyTarget(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	target := &CommandTarget{UserID: 789, Username: "muted_user"}
	store.exists[target.UserID] = true
	store.counts[target.UserID] = 4

	if err := engine.UnmuteUser(context.Background(), 123, 999, target); err != nil {
		t.Fatalf("UnmuteUser failed: %v", err)
	}

	if len(gw.restores) != 1 || gw.restores[0] != 789 {
		t.Errorf("restores = %v, want [789]", gw.restores)
	}
	if store.counts[target.UserID] != 4 {
		t.Errorf("violation count = %d, unmute must not change it", store.counts[target.UserID])
	}
	if len(gw.replies) != 1 || gw.replies[0].text != "Пользователь muted_user размучен." {
		t.Errorf("reply = %+v, want unmute confirmation", gw.replies)
	}
}

func TestUnmuteUserWithoutReplyTarget(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	if err := engine.UnmuteUser(context.Background(), 123, 999, nil); err != nil {
		t.Fatalf("UnmuteUser failed: %v", err)
	}

	if len(gw.restores) != 0 {
		t.Error("unmute without a reply target must not restore anyone")
	}
	want := "Эта команда должна быть использована в ответ на сообщение пользователя, которого вы хотите размутить."
	if len(gw.replies) != 1 || gw.replies[0].text != want {
		t.Errorf("reply = %+v, want no-reply error", gw.replies)
	}
}

func TestMuteUserSurfacesCountFailure(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	store.countErr = errors.New("connection refused")
	engine := newTestEngine(gw, &fakeClassifier{}, store)

	err := engine.MuteUser(context.Background(), 123, 999, CommandTarget{UserID: 456, Username: "test_user"})
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StoreError", err)
	}
	if len(gw.restricts) != 0 {
		t.Error("mute must not restrict when the stored count is unavailable")
	}
}

func TestProcessMessageSurfacesAppendFailure(t *testing.T) {
	gw := &fakeGateway{}
	store := newFakeStore()
	store.appendErr = errors.New("connection refused")
	engine := newTestEngine(gw, &fakeClassifier{toxic: true}, store)

	err := engine.ProcessMessage(context.Background(), testMessage())
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StoreError", err)
	}
}
