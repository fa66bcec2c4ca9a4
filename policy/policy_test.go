package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testUser struct {
	ID int
}

type testPost struct {
	Author int
}

// editPostPolicy allows editing only for the post's author.
func editPostPolicy() Policy[testUser, testPost] {
	return PolicyFunc[testUser, testPost](func(_ context.Context, action Action, actor testUser, post testPost) (Decision, error) {
		if action != "edit_post" {
			return Deny("unknown_action"), nil
		}

		if actor.ID == post.Author {
			return Allow(), nil
		}

		return Deny("unauthorized"), nil
	})
}

func TestDecision_Accessors(t *testing.T) {
	cases := map[string]struct {
		decision        Decision
		expectedAllowed bool
		expectedReason  Reason
		expectedString  string
	}{
		"allowed decision": {
			decision:        Allow(),
			expectedAllowed: true,
			expectedReason:  "",
			expectedString:  "allowed",
		},
		"denied decision with reason": {
			decision:        Deny("not_owner"),
			expectedAllowed: false,
			expectedReason:  "not_owner",
			expectedString:  "denied (not_owner)",
		},
		"denied decision without reason": {
			decision:        Deny(""),
			expectedAllowed: false,
			expectedReason:  "",
			expectedString:  "denied",
		},
		"zero value is a denial": {
			decision:        Decision{},
			expectedAllowed: false,
			expectedReason:  "",
			expectedString:  "denied",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expectedAllowed, tc.decision.Allowed())
			assert.Equal(t, !tc.expectedAllowed, tc.decision.Denied())
			assert.Equal(t, tc.expectedReason, tc.decision.Reason())
			assert.Equal(t, tc.expectedString, tc.decision.String())
		})
	}
}

func TestDecision_Comparable(t *testing.T) {
	assert.Equal(t, Allow(), Allow())
	assert.Equal(t, Deny("not_owner"), Deny("not_owner"))
	assert.NotEqual(t, Allow(), Deny(""))
	assert.NotEqual(t, Deny("not_owner"), Deny("unauthenticated"))
}

func TestAuthorized_ProjectsDecision(t *testing.T) {
	cases := map[string]struct {
		decision Decision
		err      error
		expected bool
	}{
		"allowed projects to true": {
			decision: Allow(),
			expected: true,
		},
		"denied projects to false": {
			decision: Deny("not_owner"),
			expected: false,
		},
		"denial reason does not affect the projection": {
			decision: Deny("some_other_reason"),
			expected: false,
		},
		"empty denial projects to false": {
			decision: Deny(""),
			expected: false,
		},
		"error fails closed": {
			decision: Allow(),
			err:      errors.New("backend unreachable"),
			expected: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := PolicyFunc[string, string](func(context.Context, Action, string, string) (Decision, error) {
				return tc.decision, tc.err
			})

			got := Authorized(context.Background(), p, "read", "actor", "resource")

			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.decision == Allow() && tc.err == nil, got)
		})
	}
}

func TestPolicyFunc_Authorize(t *testing.T) {
	var gotAction Action
	var gotActor, gotResource string

	p := PolicyFunc[string, string](func(_ context.Context, action Action, actor, resource string) (Decision, error) {
		gotAction, gotActor, gotResource = action, actor, resource
		return Deny("unauthenticated"), nil
	})

	d, err := p.Authorize(context.Background(), "delete", "amy", "files")

	assert.NoError(t, err)
	assert.Equal(t, Deny("unauthenticated"), d)
	assert.Equal(t, Action("delete"), gotAction)
	assert.Equal(t, "amy", gotActor)
	assert.Equal(t, "files", gotResource)
}

func TestPolicy_EditPostOwnership(t *testing.T) {
	cases := map[string]struct {
		actor    testUser
		post     testPost
		expected Decision
	}{
		"author may edit own post": {
			actor:    testUser{ID: 1},
			post:     testPost{Author: 1},
			expected: Allow(),
		},
		"other user may not edit the post": {
			actor:    testUser{ID: 2},
			post:     testPost{Author: 1},
			expected: Deny("unauthorized"),
		},
	}

	p := editPostPolicy()

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := p.Authorize(context.Background(), "edit_post", tc.actor, tc.post)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, d)
			assert.Equal(t, tc.expected == Allow(), Authorized(context.Background(), p, "edit_post", tc.actor, tc.post))
		})
	}
}
