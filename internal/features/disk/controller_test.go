package disk

import (
	"net/http"
	"testing"

	projects_testing "taskflow/internal/features/projects/testing"
	users_testing "taskflow/internal/features/users/testing"
	test_utils "taskflow/internal/util/testing"

	"github.com/stretchr/testify/assert"
)

func Test_GetDiskUsage_WhenAuthenticated_ReturnsUploadsVolumeUsage(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetDiskController())
	user := users_testing.CreateTestUser()

	var usage DiskUsage
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/system/disk", "Bearer "+user.Token, http.StatusOK, &usage)

	assert.NotEmpty(t, usage.Platform)
	assert.NotEmpty(t, usage.Path)
	assert.Greater(t, usage.TotalSpaceBytes, uint64(0))
	assert.LessOrEqual(t, usage.FreeSpaceBytes, usage.TotalSpaceBytes)
}

func Test_GetDiskUsage_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetDiskController())

	test_utils.MakeGetRequest(t, router, "/api/v1/system/disk", "", http.StatusUnauthorized)
}

func Test_EnsureFreeSpace_WhenRequestExceedsVolume_ReturnsError(t *testing.T) {
	usage, err := GetDiskService().GetDiskUsage()
	assert.NoError(t, err)

	err = GetDiskService().EnsureFreeSpace(int64(usage.TotalSpaceBytes))
	assert.Error(t, err)
}

func Test_EnsureFreeSpace_WithSmallFile_Succeeds(t *testing.T) {
	assert.NoError(t, GetDiskService().EnsureFreeSpace(1024))
}
