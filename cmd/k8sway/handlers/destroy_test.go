package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napo-io/k8sway/internal/platform/aws"
)

func existingStackClient(deleted *bool) *aws.MockClient {
	return &aws.MockClient{
		DescribeStackFunc: func(_ context.Context, name string) (*aws.Stack, error) {
			return &aws.Stack{ID: "arn:" + name, Name: name, Status: "CREATE_COMPLETE"}, nil
		},
		DeleteStackFunc: func(context.Context, string) error {
			*deleted = true
			return nil
		},
	}
}

func saveAndRestoreConfirm(t *testing.T) {
	t.Helper()
	orig := confirm
	t.Cleanup(func() { confirm = orig })
}

func TestDestroy(t *testing.T) {
	deleted := false
	out := stubEnvironment(t, existingStackClient(&deleted))

	require.NoError(t, Destroy(context.Background(), quiet(), true))
	assert.True(t, deleted)
	assert.Contains(t, out.String(), "Stack k8s-right-hard-way destroyed")
}

func TestDestroy_MissingStack(t *testing.T) {
	stubEnvironment(t, &aws.MockClient{
		DeleteStackFunc: func(context.Context, string) error {
			t.Error("a missing stack is not deleted")
			return nil
		},
	})

	require.NoError(t, Destroy(context.Background(), quiet(), true))
}

func TestDestroy_Confirmation(t *testing.T) {
	tests := []struct {
		name        string
		answer      bool
		answerErr   error
		wantErr     error
		wantDeleted bool
	}{
		{name: "accepted", answer: true, wantDeleted: true},
		{name: "declined", answer: false, wantErr: errAborted},
		{name: "prompt failed", answerErr: errors.New("no tty"), wantErr: errors.New("confirmation failed: no tty")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			stubEnvironment(t, existingStackClient(&deleted))
			saveAndRestoreConfirm(t)
			isTerminal = func() bool { return true }

			var asked string
			confirm = func(_ context.Context, title string) (bool, error) {
				asked = title
				return tt.answer, tt.answerErr
			}

			// Plain keeps the progress view out of the test.
			opts := quiet()
			opts.Plain = true
			err := Destroy(context.Background(), opts, false)

			assert.Contains(t, asked, "k8s-right-hard-way")
			assert.Equal(t, tt.wantDeleted, deleted)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDestroy_Failure(t *testing.T) {
	deleted := false
	client := existingStackClient(&deleted)
	client.WaitForStackFunc = func(context.Context, string, func(aws.StackEvent)) (*aws.Stack, error) {
		return &aws.Stack{Status: "DELETE_FAILED"}, aws.ErrStackFailed
	}
	stubEnvironment(t, client)

	err := Destroy(context.Background(), quiet(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, aws.ErrStackFailed)
	assert.Contains(t, err.Error(), "destroy failed")
}
