package domain

import (
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/require"
)

func TestFrequencyPreservesInsertionOrder(t *testing.T) {
    f := NewFrequency()
    f.Add("Story")
    f.Add("Bug")
    f.Add("Story")
    f.Add("Task")
    f.Add("Bug")
    f.Add("Story")

    require.Equal(t, []string{"Story", "Bug", "Task"}, f.Keys())
    require.Equal(t, 3, f.Get("Story"))
    require.Equal(t, 2, f.Get("Bug"))
    require.Equal(t, 1, f.Get("Task"))
    require.Equal(t, 0, f.Get("Epic"))
}

func TestFrequencyJSONRoundTrip(t *testing.T) {
    f := NewFrequency()
    f.Add("Highest")
    f.Add("None")
    f.Add("Highest")

    data, err := json.Marshal(f)
    require.NoError(t, err)
    // key order in the serialized object must match insertion order
    require.JSONEq(t, `{"Highest":2,"None":1}`, string(data))
    require.Equal(t, `{"Highest":2,"None":1}`, string(data))

    var back Frequency
    require.NoError(t, json.Unmarshal(data, &back))
    require.Equal(t, []string{"Highest", "None"}, back.Keys())
    require.Equal(t, 2, back.Get("Highest"))
}
