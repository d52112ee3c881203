package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func taskWithSubs(completed ...bool) *Task {
	t := &Task{ID: uuid.New(), Title: "task"}
	for i, c := range completed {
		t.SubTasks = append(t.SubTasks, SubTask{ID: uuid.New(), Title: "sub", Completed: c, Position: i})
	}
	return t
}

func TestToggleMainForcesSubTasks(t *testing.T) {
	task := taskWithSubs(true, false, false)

	task.ToggleMain()
	if !task.Completed {
		t.Fatal("main toggle should complete the task")
	}
	for i, st := range task.SubTasks {
		if !st.Completed {
			t.Fatalf("sub-task %d not forced to completed", i)
		}
	}

	task.ToggleMain()
	if task.Completed {
		t.Fatal("second main toggle should reopen the task")
	}
	for i, st := range task.SubTasks {
		if st.Completed {
			t.Fatalf("sub-task %d not forced to incomplete", i)
		}
	}
}

func TestToggleMainWithoutSubTasks(t *testing.T) {
	task := &Task{ID: uuid.New(), Title: "leaf"}
	task.ToggleMain()
	if !task.Completed {
		t.Fatal("leaf task should toggle on")
	}
	task.ToggleMain()
	if task.Completed {
		t.Fatal("leaf task should toggle off")
	}
}

func TestToggleSubDerivesTaskCompletion(t *testing.T) {
	task := taskWithSubs(false, false, false)

	changed, err := task.ToggleSub(task.SubTasks[0].ID)
	if err != nil {
		t.Fatalf("ToggleSub: %v", err)
	}
	if changed || task.Completed {
		t.Fatal("one of three completed must leave the task incomplete")
	}

	if _, err := task.ToggleSub(task.SubTasks[1].ID); err != nil {
		t.Fatalf("ToggleSub: %v", err)
	}
	if task.Completed {
		t.Fatal("two of three completed must leave the task incomplete")
	}

	changed, err = task.ToggleSub(task.SubTasks[2].ID)
	if err != nil {
		t.Fatalf("ToggleSub: %v", err)
	}
	if !changed || !task.Completed {
		t.Fatal("completing the last sub-task must complete the task")
	}

	// Unchecking any sub-task reopens the task.
	changed, err = task.ToggleSub(task.SubTasks[1].ID)
	if err != nil {
		t.Fatalf("ToggleSub: %v", err)
	}
	if !changed || task.Completed {
		t.Fatal("unchecking a sub-task must reopen the task")
	}
}

func TestToggleSubUnknownID(t *testing.T) {
	task := taskWithSubs(false)
	before := task.Completed

	changed, err := task.ToggleSub(uuid.New())
	if !errors.Is(err, ErrSubTaskNotFound) {
		t.Fatalf("err = %v, want ErrSubTaskNotFound", err)
	}
	if changed || task.Completed != before {
		t.Fatal("failed toggle must not change state")
	}
}
