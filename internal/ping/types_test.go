// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/kestrel/internal/netutil"
	"gopkg.in/yaml.v3"
)

func TestNewStatistics(t *testing.T) {
	tests := []struct {
		name    string
		replies []Reply
		want    Statistics
	}{
		{
			name: "no replies",
			want: Statistics{},
		},
		{
			name: "mixed outcomes",
			replies: []Reply{
				{Status: StatusReply, RTT: 10 * time.Millisecond},
				{Status: StatusTimeout},
				{Status: StatusReply, RTT: 30 * time.Millisecond},
				{Status: StatusReply, RTT: 20 * time.Millisecond},
			},
			want: Statistics{
				Transmitted: 4,
				Received:    3,
				Loss:        25,
				MinRTT:      10 * time.Millisecond,
				AvgRTT:      20 * time.Millisecond,
				MaxRTT:      30 * time.Millisecond,
			},
		},
		{
			name: "unsent attempts are not transmitted",
			replies: []Reply{
				{Status: StatusSocketError, Err: netutil.ErrSocketIO},
				{Status: StatusTimeout},
				{Status: StatusUnresolved, Err: netutil.ErrResolution},
			},
			want: Statistics{Transmitted: 1, Received: 0, Loss: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, newStatistics(tt.replies)); diff != "" {
				t.Errorf("newStatistics() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReply_Fatal(t *testing.T) {
	tests := []struct {
		name  string
		reply Reply
		want  bool
	}{
		{"reply", Reply{Status: StatusReply}, false},
		{"timeout", Reply{Status: StatusTimeout}, false},
		{"socket io error", Reply{Status: StatusSocketError, Err: netutil.ErrSocketIO}, false},
		{"privilege error", Reply{Status: StatusSocketError, Err: errors.Join(netutil.ErrPrivilege, errors.New("eperm"))}, true},
		{"unresolved", Reply{Status: StatusUnresolved, Err: netutil.ErrResolution}, true},
		{"canceled", Reply{Status: StatusCanceled}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reply.Fatal())
		})
	}
}

func TestReply_Marshal(t *testing.T) {
	r := Reply{Host: "10.0.0.1", Seq: 2, Status: StatusReply, RTT: 1500 * time.Microsecond, Bytes: 200, From: "10.0.0.1"}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"host":"10.0.0.1","seq":2,"status":"reply","rttMs":1.5,"bytes":200,"from":"10.0.0.1"}`, string(b))

	failed := Reply{Host: "x", Seq: 1, Status: StatusUnresolved, Err: netutil.ErrResolution}
	y, err := yaml.Marshal(failed)
	require.NoError(t, err)
	assert.Equal(t, "host: x\nseq: 1\nstatus: unresolved\nerror: unable to resolve host\n", string(y))
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	err := Options{Count: 0, Timeout: -1, PayloadSize: 1 << 20}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
	assert.Contains(t, err.Error(), "timeout")
	assert.Contains(t, err.Error(), "payload size")
}
