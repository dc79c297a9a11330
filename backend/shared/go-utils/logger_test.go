package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestAppNameHookPrefixesMessages(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.AddHook(&appNameHook{appName: "marketplace-service"})

	l.Info("hello")

	require.Contains(t, buf.String(), "[marketplace-service] hello")
}

func TestInitLoggerFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouting")
	InitLogger("test")
	require.Equal(t, logrus.InfoLevel, Logger.GetLevel())

	t.Setenv("LOG_LEVEL", "debug")
	InitLogger("test")
	require.Equal(t, logrus.DebugLevel, Logger.GetLevel())
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestNilIfBlank(t *testing.T) {
	require.Nil(t, NilIfBlank("   "))
	require.Equal(t, "note", *NilIfBlank("note"))
}

func TestRandomStringLength(t *testing.T) {
	for _, n := range []int{1, 6, 9} {
		s := RandomString(n)
		require.Len(t, s, n)
		require.Equal(t, strings.ToLower(s), s)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.True(t, PasswordMatches("hunter22", &hash))
	require.False(t, PasswordMatches("hunter23", &hash))
	require.False(t, PasswordMatches("hunter22", nil))
	require.False(t, PasswordMatches("", Ptr("")))

	_, err = HashPassword(strings.Repeat("x", 73))
	require.Error(t, err)
}
