//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveSelectedPhoto(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.CreateTestPhotos("alpha.jpg", "beach.jpg", "creek.jpg"))

	require.NoError(t, tf.StartApp("-d", workspace), "Failed to start app")
	require.True(t, tf.Ready(), "should render title")
	require.True(t, tf.SeeSelected("alpha.jpg"), "should start on first photo")

	require.NoError(t, tf.SendKeys(KeyRemove))
	require.True(t, tf.SeePlain("remove alpha.jpg from the collection? (y/n)"),
		"x should ask for confirmation")

	require.NoError(t, tf.SendKeys(KeyYes))
	require.True(t, tf.SeePlain("2 photos"), "removal should shrink the collection")
	require.True(t, tf.SeeSelected("beach.jpg"), "cursor should land on the next photo")

	tf.Quit()
}

func TestRemoveCancelledKeepsPhoto(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.CreateTestPhotos("alpha.jpg", "beach.jpg"))

	require.NoError(t, tf.StartApp("-d", workspace), "Failed to start app")
	require.True(t, tf.Ready(), "should render title")
	require.True(t, tf.SeeSelected("alpha.jpg"), "should start on first photo")

	require.NoError(t, tf.SendKeys(KeyRemove))
	require.True(t, tf.SeePlain("remove alpha.jpg from the collection? (y/n)"),
		"x should ask for confirmation")

	require.NoError(t, tf.SendKeys(KeyNo))
	require.True(t, tf.SeePlain("2 photos"), "cancel should keep the collection intact")
	require.True(t, tf.SeeSelected("alpha.jpg"), "cancel should keep the cursor in place")

	tf.Quit()
}
