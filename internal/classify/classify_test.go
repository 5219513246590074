package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		command string
		want    Family
	}{
		{"npm install express", FamilyPackageManager},
		{"npm", FamilyPackageManager},
		{"npx create-react-app demo", FamilyPackageManager},
		{"yarn add lodash", FamilyPackageManager},
		{"pnpm install", FamilyPackageManager},
		{"python3 manage.py migrate", FamilyPython},
		{"python script.py", FamilyPython},
		{"pytest -x tests/", FamilyPython},
		{"pip install requests", FamilyPython},
		{"pip3 install -r requirements.txt", FamilyPython},
		{"node server.js", FamilyNode},
		{"jest --coverage", FamilyNode},
		{"mocha test/", FamilyNode},
		{"tsc --noEmit", FamilyNode},
		{"ls -la", FamilyGeneric},
		{"git status", FamilyGeneric},
		{"cargo build --release", FamilyGeneric},
		{"", FamilyGeneric},
		{"   ", FamilyGeneric},
		{"NPM INSTALL", FamilyPackageManager}, // case-insensitive
	}

	for _, tt := range tests {
		if got := Classify(tt.command); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// "npm run pytest" carries both an npm and a pytest token; rule
	// order, not specificity, decides.
	if got := Classify("npm run pytest"); got != FamilyPackageManager {
		t.Errorf("Classify(npm run pytest) = %q, want %q", got, FamilyPackageManager)
	}
}
