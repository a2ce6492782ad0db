package editorcmd

import (
	"testing"

	command "github.com/goliatone/go-command"
)

func TestMessagesValidate(t *testing.T) {
	cases := []struct {
		name    string
		msg     interface{ Validate() error }
		wantErr bool
	}{
		{name: "add ok", msg: AddBlockCommand{BlockType: "quote"}},
		{name: "add missing type", msg: AddBlockCommand{}, wantErr: true},
		{name: "add blank type", msg: AddBlockCommand{BlockType: "   "}, wantErr: true},
		{name: "update ok", msg: UpdateBlockCommand{BlockID: "b1", Props: map[string]any{}}},
		{name: "update missing props", msg: UpdateBlockCommand{BlockID: "b1"}, wantErr: true},
		{name: "update missing id", msg: UpdateBlockCommand{Props: map[string]any{}}, wantErr: true},
		{name: "remove missing id", msg: RemoveBlockCommand{}, wantErr: true},
		{name: "duplicate missing id", msg: DuplicateBlockCommand{}, wantErr: true},
		{name: "move ok", msg: MoveBlockCommand{From: 0, To: 3}},
		{name: "move negative", msg: MoveBlockCommand{From: -1, To: 0}, wantErr: true},
		{name: "drop without target", msg: DropBlockCommand{DraggedID: "b1"}},
		{name: "drop missing dragged", msg: DropBlockCommand{TargetID: "b1"}, wantErr: true},
		{name: "undo", msg: UndoCommand{}},
		{name: "redo", msg: RedoCommand{}},
		{name: "commit empty label", msg: CommitEditCommand{}},
		{name: "commit label too long", msg: CommitEditCommand{Label: string(make([]byte, maxLabelLength+1))}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid message, got %v", err)
			}
		})
	}
}

func TestMessageTypes(t *testing.T) {
	msgs := map[string]command.Message{
		addBlockMessageType:       AddBlockCommand{},
		updateBlockMessageType:    UpdateBlockCommand{},
		removeBlockMessageType:    RemoveBlockCommand{},
		duplicateBlockMessageType: DuplicateBlockCommand{},
		moveBlockMessageType:      MoveBlockCommand{},
		dropBlockMessageType:      DropBlockCommand{},
		undoMessageType:           UndoCommand{},
		redoMessageType:           RedoCommand{},
		commitEditMessageType:     CommitEditCommand{},
	}
	for want, msg := range msgs {
		if got := msg.Type(); got != want {
			t.Fatalf("expected type %s, got %s", want, got)
		}
	}
}
