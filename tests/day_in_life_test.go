package tests

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDayInTheLifeFlow(t *testing.T) {
	binPath := buildCalaiBinary(t)
	dbPath := filepath.Join(t.TempDir(), "calai.db")
	initDB(t, binPath, dbPath)

	stdout, stderr, exit := runCalai(t, binPath, dbPath, "signup", "Alice")
	if exit != 0 {
		t.Fatalf("signup failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Welcome, alice!") {
		t.Fatalf("signup output: %s", stdout)
	}

	stdout, stderr, exit = runCalai(t, binPath, dbPath,
		"onboard",
		"--age", "30",
		"--weight", "65",
		"--height", "165",
		"--gender", "female",
		"--activity", "moderate",
		"--goal", "lose",
	)
	if exit != 0 {
		t.Fatalf("onboard failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Daily goal: 1620 kcal") {
		t.Fatalf("onboard output: %s", stdout)
	}
	if !strings.Contains(stdout, "P 122g | C 162g | F 54g") {
		t.Fatalf("onboard macros: %s", stdout)
	}

	stdout, stderr, exit = runCalai(t, binPath, dbPath, "dashboard")
	if exit != 0 {
		t.Fatalf("dashboard failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Consumed: 0 / 1620 kcal") {
		t.Fatalf("dashboard output: %s", stdout)
	}
	if !strings.Contains(stdout, "Remaining: 1620 kcal") {
		t.Fatalf("dashboard remaining: %s", stdout)
	}

	stdout, stderr, exit = runCalai(t, binPath, dbPath, "profile", "show")
	if exit != 0 {
		t.Fatalf("profile show failed: exit=%d stderr=%s", exit, stderr)
	}
	for _, want := range []string{"User: alice", "Goal: lose", "Daily goal: 1620 kcal"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("profile show missing %q:\n%s", want, stdout)
		}
	}

	stdout, stderr, exit = runCalai(t, binPath, dbPath, "analytics")
	if exit != 0 {
		t.Fatalf("analytics failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Not enough data.") || !strings.Contains(stdout, "Scan some meals to see your analytics!") {
		t.Fatalf("analytics empty state: %s", stdout)
	}

	stdout, stderr, exit = runCalai(t, binPath, dbPath, "analytics", "--json")
	if exit != 0 {
		t.Fatalf("analytics --json failed: exit=%d stderr=%s", exit, stderr)
	}
	if strings.TrimSpace(stdout) == "null" {
		t.Fatalf("analytics --json on empty history must not emit null")
	}
	if !strings.Contains(stdout, `"meal_count": 0`) || !strings.Contains(stdout, `"days": []`) {
		t.Fatalf("analytics --json empty state: %s", stdout)
	}

	stdout, stderr, exit = runCalai(t, binPath, dbPath, "history", "list")
	if exit != 0 {
		t.Fatalf("history list failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "No meals logged yet.") {
		t.Fatalf("history empty state: %s", stdout)
	}

	if _, stderr, exit = runCalai(t, binPath, dbPath, "logout"); exit != 0 {
		t.Fatalf("logout failed: exit=%d stderr=%s", exit, stderr)
	}
	_, stderr, exit = runCalai(t, binPath, dbPath, "dashboard")
	if exit == 0 {
		t.Fatalf("dashboard after logout should fail")
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Fatalf("expected login hint, got: %s", stderr)
	}

	stdout, stderr, exit = runCalai(t, binPath, dbPath, "login", "alice")
	if exit != 0 {
		t.Fatalf("login failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Logged in as alice") {
		t.Fatalf("login output: %s", stdout)
	}

	_, stderr, exit = runCalai(t, binPath, dbPath, "account", "delete", "--yes")
	if exit != 0 {
		t.Fatalf("account delete failed: exit=%d stderr=%s", exit, stderr)
	}
	_, stderr, exit = runCalai(t, binPath, dbPath, "login", "alice")
	if exit == 0 {
		t.Fatalf("login after account delete should fail")
	}
	if !strings.Contains(stderr, "user not found") {
		t.Fatalf("expected user not found, got: %s", stderr)
	}
}
