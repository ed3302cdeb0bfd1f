package main

import (
	"context"
	"dormaid/database"
	"dormaid/models"
	"dormaid/services/authService"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeTokens struct{}

func (fakeTokens) IssueToken(userID uint) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

func TestImportUsers(t *testing.T) {
	db := database.NewTestDB(t)
	svc := authService.New(db, fakeTokens{}, bcrypt.MinCost)

	csvData := strings.Join([]string{
		"username,email,password,role,room_number,block_number,phone,work_area,register_number",
		"bob,bob@example.com,secret123,technician,,,9000000001,plumbing,",
		"wendy,wendy@example.com,secret123,warden,,,,,",
		"alice,alice@example.com,secret123,student,A-101,A,,,23MIS0145",
		"mallory,mallory@example.com,secret123,student,A-102,A,,,bad",
		"bob2,bob@example.com,secret123,technician,,,,,",
		",nobody@example.com,secret123,,,,,,",
	}, "\n")

	res, err := importUsers(context.Background(), svc, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 3, res.Skipped)

	var bob models.User
	require.NoError(t, db.Where("email = ?", "bob@example.com").First(&bob).Error)
	assert.Equal(t, models.RoleTechnician, bob.Role)
	assert.Equal(t, "plumbing", bob.WorkArea)
}

func TestImportUsersRejectsBadHeader(t *testing.T) {
	svc := authService.New(database.NewTestDB(t), fakeTokens{}, bcrypt.MinCost)

	_, err := importUsers(context.Background(), svc, strings.NewReader("name,mail\nx,y\n"))
	assert.Error(t, err)

	_, err = importUsers(context.Background(), svc, strings.NewReader("username,email,password\n"))
	assert.Error(t, err)
}
