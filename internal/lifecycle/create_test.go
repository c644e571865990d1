package lifecycle

import "testing"

func TestCreateRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateRequest
		wantErr bool
	}{
		{"valid new branch", CreateRequest{WorkspaceName: "feature-a", Branch: BranchMode{NewBranch: "main"}}, false},
		{"valid existing branch", CreateRequest{WorkspaceName: "feature_b", Branch: BranchMode{ExistingBranch: "feature/b"}}, false},
		{"empty name", CreateRequest{WorkspaceName: "", Branch: BranchMode{NewBranch: "main"}}, true},
		{"invalid chars", CreateRequest{WorkspaceName: "feat/a", Branch: BranchMode{NewBranch: "main"}}, true},
		{"neither branch set", CreateRequest{WorkspaceName: "feature-a"}, true},
		{"both branches set", CreateRequest{WorkspaceName: "feature-a", Branch: BranchMode{NewBranch: "main", ExistingBranch: "x"}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestBranchNameAndMarkerBaseBranch(t *testing.T) {
	newBranchReq := CreateRequest{WorkspaceName: "feature-a", Branch: BranchMode{NewBranch: "main"}}
	if got := newBranchReq.BranchName(); got != "feature-a" {
		t.Errorf("BranchName() = %q, want feature-a", got)
	}
	if got := newBranchReq.MarkerBaseBranch(); got != "main" {
		t.Errorf("MarkerBaseBranch() = %q, want main", got)
	}

	existingReq := CreateRequest{WorkspaceName: "feature-a", Branch: BranchMode{ExistingBranch: "feature/a"}}
	if got := existingReq.BranchName(); got != "feature/a" {
		t.Errorf("BranchName() = %q, want feature/a", got)
	}
	if got := existingReq.MarkerBaseBranch(); got != "feature/a" {
		t.Errorf("MarkerBaseBranch() = %q, want feature/a", got)
	}
}

func TestWorkspaceDir(t *testing.T) {
	got := WorkspaceDir("/repos/grove", "grove", "feature-a")
	want := "/repos/grove-feature-a"
	if got != want {
		t.Errorf("WorkspaceDir() = %q, want %q", got, want)
	}
}
