package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/pkg/apperr"
	"github.com/code2day/recipe-api/pkg/helpers"
	"github.com/code2day/recipe-api/pkg/notify"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRegFixture() (*RegistrationService, *fakeUserRepo, *fakeFavoriteRepo, *fakeNotifier) {
	users := newFakeUserRepo()
	recipes := newFakeRecipeRepo()
	favorites := newFakeFavoriteRepo(users, recipes)
	notifier := &fakeNotifier{}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewRegistrationService(users, favorites, jwt, notifier, testLogger())
	return svc, users, favorites, notifier
}

func TestRegisterCreatesPendingAccountAndDispatchesCode(t *testing.T) {
	svc, users, _, notifier := newRegFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, "Alice", "alice@example.com", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if u.IsVerified {
		t.Error("new account must start unverified")
	}
	if u.HasPassword() {
		t.Error("new account must have no credential")
	}
	if len(u.VerificationCode) != 6 {
		t.Errorf("verification code = %q, want 6 chars", u.VerificationCode)
	}
	if u.CodeExpiresAt == nil || !u.CodeExpiresAt.After(time.Now()) {
		t.Error("code expiry must be set in the future")
	}

	job, ok := notifier.last()
	if !ok {
		t.Fatal("no notification dispatched")
	}
	if job.Channel != notify.ChannelEmail || job.To != "alice@example.com" {
		t.Errorf("job = %+v, want email to alice@example.com", job)
	}
	if job.Code != u.VerificationCode {
		t.Error("dispatched code must match the stored code")
	}
}

func TestRegisterExistingVerifiedAccountConflictsWithoutMutation(t *testing.T) {
	svc, users, _, _ := newRegFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, "Alice", "alice@example.com", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	before, _ := users.GetByEmail(ctx, "alice@example.com")
	if err := svc.VerifyEmail(ctx, "alice@example.com", before.VerificationCode); err != nil {
		t.Fatalf("verify: %v", err)
	}
	verified, _ := users.GetByEmail(ctx, "alice@example.com")

	err := svc.Register(ctx, "Mallory", "alice@example.com", "")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want Conflict", apperr.KindOf(err))
	}

	after, _ := users.GetByEmail(ctx, "alice@example.com")
	if after.Name != verified.Name || after.IsVerified != verified.IsVerified ||
		after.VerificationCode != verified.VerificationCode {
		t.Error("conflicting register must not mutate the existing account")
	}
}

func TestRegisterPendingAccountReissuesCode(t *testing.T) {
	svc, users, _, _ := newRegFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, "Alice", "alice@example.com", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	first, _ := users.GetByEmail(ctx, "alice@example.com")

	if err := svc.Register(ctx, "Alice", "alice@example.com", ""); err != nil {
		t.Fatalf("re-register pending: %v", err)
	}
	second, _ := users.GetByEmail(ctx, "alice@example.com")

	if second.ID != first.ID {
		t.Error("re-register must reuse the pending account")
	}
	if second.VerificationCode == first.VerificationCode {
		t.Error("re-register must issue a fresh code")
	}
}

func TestVerifyEmailCodeIsSingleUse(t *testing.T) {
	svc, users, _, _ := newRegFixture()
	ctx := context.Background()

	_ = svc.Register(ctx, "Alice", "alice@example.com", "")
	u, _ := users.GetByEmail(ctx, "alice@example.com")
	code := u.VerificationCode

	if err := svc.VerifyEmail(ctx, "alice@example.com", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	u, _ = users.GetByEmail(ctx, "alice@example.com")
	if !u.IsVerified {
		t.Error("account must be verified")
	}
	if u.VerificationCode != "" || u.CodeExpiresAt != nil {
		t.Error("code must be cleared on success")
	}

	err := svc.VerifyEmail(ctx, "alice@example.com", code)
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("replayed code: kind = %v, want InvalidInput", apperr.KindOf(err))
	}
}

func TestVerifyEmailRejectsWrongAndExpiredCodes(t *testing.T) {
	svc, users, _, _ := newRegFixture()
	ctx := context.Background()

	_ = svc.Register(ctx, "Alice", "alice@example.com", "")

	if err := svc.VerifyEmail(ctx, "alice@example.com", "FFFFFF"); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("wrong code: kind = %v, want InvalidInput", apperr.KindOf(err))
	}
	if err := svc.VerifyEmail(ctx, "nobody@example.com", "FFFFFF"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("unknown email: kind = %v, want NotFound", apperr.KindOf(err))
	}

	u, _ := users.GetByEmail(ctx, "alice@example.com")
	past := time.Now().Add(-time.Minute)
	u.CodeExpiresAt = &past
	_ = users.Update(ctx, u)

	if err := svc.VerifyEmail(ctx, "alice@example.com", u.VerificationCode); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("expired code: kind = %v, want InvalidInput", apperr.KindOf(err))
	}
}

func TestAddInfoRequiresAllFields(t *testing.T) {
	svc, _, _, _ := newRegFixture()
	ctx := context.Background()

	_ = svc.Register(ctx, "Alice", "alice@example.com", "")

	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.AddInfo(ctx, "alice@example.com", "", dob, "1 Main St"); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("missing mobile: kind = %v, want InvalidInput", apperr.KindOf(err))
	}
	if _, err := svc.AddInfo(ctx, "nobody@example.com", "08123456789", dob, "1 Main St"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("unknown email: kind = %v, want NotFound", apperr.KindOf(err))
	}

	u, err := svc.AddInfo(ctx, "alice@example.com", "08123456789", dob, "1 Main St")
	if err != nil {
		t.Fatalf("add info: %v", err)
	}
	if u.MobileNumber != "08123456789" || u.Address != "1 Main St" || u.DOB == nil {
		t.Error("contact fields must be persisted")
	}
}

func TestFinalizeSetsCredentialAndIssuesToken(t *testing.T) {
	svc, users, _, _ := newRegFixture()
	ctx := context.Background()

	_ = svc.Register(ctx, "Alice", "alice@example.com", "")
	u, token, exp, err := svc.Finalize(ctx, "alice@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if token == "" || !exp.After(time.Now()) {
		t.Error("finalize must issue a live token")
	}

	claims, err := svc.JWT.Parse(token)
	if err != nil {
		t.Fatalf("token parse: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("token uid = %q, want %q", claims.UserID, u.ID)
	}

	stored, _ := users.GetByEmail(ctx, "alice@example.com")
	if stored.Password == "s3cretpass" {
		t.Error("credential must be stored hashed")
	}
	if !helpers.CompareHashAndPassword(stored.Password, "s3cretpass") {
		t.Error("stored hash must verify against the password")
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _, _, _ := newRegFixture()
	ctx := context.Background()

	_ = svc.Register(ctx, "Alice", "alice@example.com", "")
	if _, _, _, err := svc.Finalize(ctx, "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	_, _, _, errWrongPass := svc.Login(ctx, "alice@example.com", "wrong")
	_, _, _, errWrongEmail := svc.Login(ctx, "nobody@example.com", "s3cretpass")

	if apperr.KindOf(errWrongPass) != apperr.KindUnauthorized {
		t.Errorf("wrong password: kind = %v, want Unauthorized", apperr.KindOf(errWrongPass))
	}
	if apperr.KindOf(errWrongEmail) != apperr.KindUnauthorized {
		t.Errorf("wrong email: kind = %v, want Unauthorized", apperr.KindOf(errWrongEmail))
	}
	if apperr.MessageOf(errWrongPass) != apperr.MessageOf(errWrongEmail) {
		t.Error("wrong email and wrong password must be indistinguishable")
	}

	if _, _, _, err := svc.Login(ctx, "alice@example.com", "s3cretpass"); err != nil {
		t.Errorf("valid login: %v", err)
	}
}

func TestLoginRejectsPendingAccount(t *testing.T) {
	svc, _, _, _ := newRegFixture()
	ctx := context.Background()

	_ = svc.Register(ctx, "Alice", "alice@example.com", "")
	_, _, _, err := svc.Login(ctx, "alice@example.com", "anything")
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("kind = %v, want Unauthorized", apperr.KindOf(err))
	}
}

func TestGuestLoginCreatesUniqueFlaggedAccounts(t *testing.T) {
	svc, _, _, _ := newRegFixture()
	ctx := context.Background()

	u1, token1, _, err := svc.GuestLogin(ctx)
	if err != nil {
		t.Fatalf("guest login: %v", err)
	}
	u2, _, _, err := svc.GuestLogin(ctx)
	if err != nil {
		t.Fatalf("second guest login: %v", err)
	}

	if u1.Email == u2.Email {
		t.Error("guest identifiers must be unique")
	}
	if !u1.IsGuest || u1.Role != entity.RoleGuest || !u1.IsVerified {
		t.Errorf("guest account = %+v, want flagged, guest role, verified", u1)
	}
	claims, err := svc.JWT.Parse(token1)
	if err != nil || claims.UserID != u1.ID {
		t.Error("guest token must be bound to the guest account")
	}
}

func TestRegisterNotifierFailureSurfacesAsDependency(t *testing.T) {
	svc, _, _, notifier := newRegFixture()
	notifier.fail = context.DeadlineExceeded

	err := svc.Register(context.Background(), "Alice", "alice@example.com", "")
	if apperr.KindOf(err) != apperr.KindDependency {
		t.Errorf("kind = %v, want Dependency", apperr.KindOf(err))
	}
}

func TestRegisterSMSChannelWhenEnabled(t *testing.T) {
	svc, _, _, notifier := newRegFixture()
	svc.SMSVerification = true
	ctx := context.Background()

	if err := svc.Register(ctx, "Alice", "alice@example.com", "08123456789"); err != nil {
		t.Fatalf("register: %v", err)
	}
	job, ok := notifier.last()
	if !ok {
		t.Fatal("no notification dispatched")
	}
	if job.Channel != notify.ChannelSMS || job.To != "08123456789" {
		t.Errorf("job = %+v, want sms to mobile number", job)
	}
}

func TestGetProfileIncludesFavoriteIDs(t *testing.T) {
	svc, users, favorites, _ := newRegFixture()
	ctx := context.Background()

	u := &entity.User{Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser}
	if err := users.Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	if _, err := favorites.Add(ctx, u.ID, "recipe-9"); err != nil {
		t.Fatal(err)
	}

	got, favs, err := svc.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("profile id = %q, want %q", got.ID, u.ID)
	}
	if len(favs) != 1 || favs[0] != "recipe-9" {
		t.Errorf("favorites = %v, want [recipe-9]", favs)
	}
}
