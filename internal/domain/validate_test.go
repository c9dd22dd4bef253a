package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrganizationName(t *testing.T) {
	assert.NoError(t, ValidateOrganizationName("acme-fleet_01"))

	assert.Error(t, ValidateOrganizationName(""))
	assert.Error(t, ValidateOrganizationName("ab"))
	assert.Error(t, ValidateOrganizationName("Acme"))
	assert.Error(t, ValidateOrganizationName("has space"))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidateOrganizationName(string(long)))
}

func TestValidateAccountName(t *testing.T) {
	assert.NoError(t, ValidateAccountName("Alice_01"))
	assert.NoError(t, ValidateAccountName("bob-smith"))

	assert.Error(t, ValidateAccountName(""))
	assert.Error(t, ValidateAccountName("bad name"))
	assert.Error(t, ValidateAccountName("bad@name"))
}

func TestValidateMAC(t *testing.T) {
	assert.NoError(t, ValidateMAC("AA:BB:CC:DD:EE:FF"))
	assert.NoError(t, ValidateMAC("aa-bb-cc-dd-ee-ff"))

	assert.Error(t, ValidateMAC("AA:BB:CC:DD:EE"))
	assert.Error(t, ValidateMAC("AABBCCDDEEFF"))
	assert.Error(t, ValidateMAC("GG:BB:CC:DD:EE:FF"))
}

func TestValidatePermission(t *testing.T) {
	for _, p := range []string{"admin", "manager", "user", "viewer"} {
		assert.NoError(t, ValidatePermission(p))
	}
	assert.Error(t, ValidatePermission("root"))
	assert.Error(t, ValidatePermission(""))
}

func TestValidateLoginFreeAddress(t *testing.T) {
	assert.NoError(t, ValidateLoginFreeAddress(""))
	assert.NoError(t, ValidateLoginFreeAddress("192.168.1.10"))
	assert.NoError(t, ValidateLoginFreeAddress("https://example.com/login"))
	assert.NoError(t, ValidateLoginFreeAddress("http://example.com"))

	assert.Error(t, ValidateLoginFreeAddress("999.1.1.1"))
	assert.Error(t, ValidateLoginFreeAddress("ftp://example.com"))
	assert.Error(t, ValidateLoginFreeAddress("not an address"))
}

func TestValidateTimeRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	assert.NoError(t, ValidateTimeRange(nil, nil))
	assert.NoError(t, ValidateTimeRange(&start, nil))
	assert.NoError(t, ValidateTimeRange(nil, &end))
	assert.NoError(t, ValidateTimeRange(&start, &end))

	assert.Error(t, ValidateTimeRange(&end, &start))
	assert.Error(t, ValidateTimeRange(&start, &start))
}

func TestValidateBulkIDs(t *testing.T) {
	assert.NoError(t, ValidateBulkIDs([]int64{1, 2, 3}))

	assert.Error(t, ValidateBulkIDs(nil))
	assert.Error(t, ValidateBulkIDs([]int64{}))
	assert.Error(t, ValidateBulkIDs([]int64{1, 2, 1}))

	ids := make([]int64, 101)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	assert.Error(t, ValidateBulkIDs(ids))
}

func TestValidateWarnType(t *testing.T) {
	for _, w := range []string{"geofence", "low_battery", "unexpected_movement"} {
		assert.NoError(t, ValidateWarnType(w))
	}
	assert.Error(t, ValidateWarnType("meltdown"))
}

func TestJoinRefDisplayName(t *testing.T) {
	matched := JoinRef{Name: "truck-7", Matched: true}
	assert.Equal(t, "truck-7", matched.DisplayName())

	assert.Equal(t, UnknownName, JoinRef{}.DisplayName())
}

func TestOrganizationCreateValidate_Trims(t *testing.T) {
	create := &OrganizationCreate{OrganizationName: "  acme  ", Title: "  Acme  "}
	assert.NoError(t, create.Validate())
	assert.Equal(t, "acme", create.OrganizationName)
	assert.Equal(t, "Acme", create.Title)
}

func TestOrganizationUpdateValidate_RequiresAField(t *testing.T) {
	update := &OrganizationUpdate{}
	assert.Error(t, update.Validate())
}

func TestAlarmHandleRequestValidate(t *testing.T) {
	req := &AlarmHandleRequest{AlarmIDs: []int64{1}, Reason: "checked"}
	assert.NoError(t, req.Validate())

	req = &AlarmHandleRequest{AlarmIDs: nil, Reason: "checked"}
	assert.Error(t, req.Validate())
}
