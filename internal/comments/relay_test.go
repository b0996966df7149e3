package comments

import (
	"testing"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// stubView is a minimal stand-in for the open task detail.
type stubView struct {
	taskID   string
	comments []model.Comment
}

func (v *stubView) CurrentTaskID() string         { return v.taskID }
func (v *stubView) Comments() []model.Comment     { return v.comments }
func (v *stubView) AppendComment(c model.Comment) { v.comments = append(v.comments, c) }

func TestRelayDeliversToOpenTask(t *testing.T) {
	view := &stubView{taskID: "task-7"}
	r := NewRelay(view)

	c := model.Comment{ID: "c1", TaskID: "task-7", Body: "hi"}
	if !r.OnComment("task-7", c) {
		t.Fatal("expected delivery to the open task")
	}
	if len(view.comments) != 1 || view.comments[0].ID != "c1" {
		t.Fatalf("unexpected thread: %+v", view.comments)
	}
}

func TestRelayDropsOtherTasks(t *testing.T) {
	view := &stubView{taskID: "task-9"}
	r := NewRelay(view)

	if r.OnComment("task-7", model.Comment{ID: "c1"}) {
		t.Fatal("expected event for a different task to be dropped")
	}
	if len(view.comments) != 0 {
		t.Fatalf("thread for task-9 changed: %+v", view.comments)
	}
}

func TestRelayDropsWhenNoDetailOpen(t *testing.T) {
	view := &stubView{}
	r := NewRelay(view)

	if r.OnComment("task-7", model.Comment{ID: "c1"}) {
		t.Fatal("expected event to be dropped with no detail open")
	}
}

func TestRelayDeduplicatesByCommentID(t *testing.T) {
	view := &stubView{
		taskID: "task-7",
		// The author's own optimistic insert is already present.
		comments: []model.Comment{{ID: "c1", Body: "optimistic"}},
	}
	r := NewRelay(view)

	if r.OnComment("task-7", model.Comment{ID: "c1", Body: "pushed"}) {
		t.Fatal("expected duplicate comment to be dropped")
	}
	if len(view.comments) != 1 {
		t.Fatalf("expected a single c1, got %+v", view.comments)
	}

	if !r.OnComment("task-7", model.Comment{ID: "c2"}) {
		t.Fatal("expected a new comment to be delivered")
	}
	if len(view.comments) != 2 {
		t.Fatalf("expected two comments, got %+v", view.comments)
	}
}
