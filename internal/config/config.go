package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Priority  Priority  `mapstructure:",squash"`
	Monday    Monday    `mapstructure:",squash"`
	MSGraph   MSGraph   `mapstructure:",squash"`
	Anthropic Anthropic `mapstructure:",squash"`
	Timelines Timelines `mapstructure:",squash"`
	Reports   Reports   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Server configures the reportd admin API.
type Server struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	AdminToken string `mapstructure:"admin_token"`
}

// Priority is the ERP OData endpoint, basic-auth credentials from env.
type Priority struct {
	BaseURL  string `mapstructure:"priority_base_url"`
	User     string `mapstructure:"priority_api_user"`
	Password string `mapstructure:"priority_api_pass"`
}

// Monday holds the work-board API access plus the per-board column wiring.
// Column IDs are opaque and not stable across boards, so they live in
// configuration rather than code.
type Monday struct {
	URL        string `mapstructure:"monday_api_url"`
	Token      string `mapstructure:"monday_api_token"`
	APIVersion string `mapstructure:"monday_api_version"`
	BoardID    string `mapstructure:"monday_board_id"`

	Columns DeliveryColumns `mapstructure:",squash"`
}

type DeliveryColumns struct {
	Date        string `mapstructure:"monday_col_date"`
	Driver      string `mapstructure:"monday_col_driver"`
	Customer    string `mapstructure:"monday_col_customer"`
	City        string `mapstructure:"monday_col_city"`
	SKU         string `mapstructure:"monday_col_sku"`
	Description string `mapstructure:"monday_col_description"`
	Pallets     string `mapstructure:"monday_col_pallets"`
	Order       string `mapstructure:"monday_col_order"`
}

type MSGraph struct {
	ClientID     string `mapstructure:"ms365_client_id"`
	ClientSecret string `mapstructure:"ms365_client_secret"`
	TenantID     string `mapstructure:"ms365_tenant_id"`
	UserEmail    string `mapstructure:"ms365_user_email"`
}

type Anthropic struct {
	APIKey    string `mapstructure:"anthropic_api_key"`
	Model     string `mapstructure:"anthropic_model"`
	MaxTokens int    `mapstructure:"anthropic_max_tokens"`
}

type Timelines struct {
	BaseURL string `mapstructure:"timelines_base_url"`
	Token   string `mapstructure:"timelines_api_key"`
}

// Reports carries per-report wiring: recipients, lookup tables, palettes and
// the reportd cron schedules. Lookup tables are parsed from env lists so a
// board change never requires a code change.
type Reports struct {
	DeliveriesRecipients string `mapstructure:"deliveries_recipients"`
	UninvoicedRecipients string `mapstructure:"uninvoiced_recipients"`
	ContainersRecipients string `mapstructure:"containers_recipients"`
	DigestRecipients     string `mapstructure:"digest_recipients"`

	DriverLabelList string `mapstructure:"deliveries_driver_labels"`
	DriverColorList string `mapstructure:"deliveries_driver_colors"`
	StatusColorList string `mapstructure:"uninvoiced_status_colors"`

	UninvoicedLookbackDays int `mapstructure:"uninvoiced_lookback_days"`

	DeliveriesCron    string `mapstructure:"deliveries_cron"`
	DeliveriesEnabled bool   `mapstructure:"deliveries_enabled"`
	UninvoicedCron    string `mapstructure:"uninvoiced_cron"`
	UninvoicedEnabled bool   `mapstructure:"uninvoiced_enabled"`
	ContainersCron    string `mapstructure:"containers_cron"`
	ContainersEnabled bool   `mapstructure:"containers_enabled"`
	DigestCron        string `mapstructure:"digest_cron"`
	DigestEnabled     bool   `mapstructure:"digest_enabled"`
}

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("ADMIN_TOKEN", "")

	viper.SetDefault("PRIORITY_BASE_URL", "https://p.priority-connect.online/odata/Priority/tabzfdbb.ini/a230521")

	// Credentials have no usable default, but viper resolves environment
	// values only for keys it already knows, so each one is registered
	// empty here. Require catches any that stay empty at startup.
	viper.SetDefault("PRIORITY_API_USER", "")
	viper.SetDefault("PRIORITY_API_PASS", "")
	viper.SetDefault("MONDAY_API_TOKEN", "")
	viper.SetDefault("MS365_CLIENT_ID", "")
	viper.SetDefault("MS365_CLIENT_SECRET", "")
	viper.SetDefault("MS365_TENANT_ID", "")
	viper.SetDefault("MS365_USER_EMAIL", "")
	viper.SetDefault("ANTHROPIC_API_KEY", "")
	viper.SetDefault("TIMELINES_API_KEY", "")

	viper.SetDefault("MONDAY_API_URL", "https://api.monday.com/v2")
	viper.SetDefault("MONDAY_API_VERSION", "2024-01")
	viper.SetDefault("MONDAY_BOARD_ID", "5089475109")
	viper.SetDefault("MONDAY_COL_DATE", "date4")
	viper.SetDefault("MONDAY_COL_DRIVER", "color_mkz4z0q4")
	viper.SetDefault("MONDAY_COL_CUSTOMER", "text_mkz43a4j")
	viper.SetDefault("MONDAY_COL_CITY", "text_mkz4zrrm")
	viper.SetDefault("MONDAY_COL_SKU", "text_mkz4pcnj")
	viper.SetDefault("MONDAY_COL_DESCRIPTION", "text_mkz4c904")
	viper.SetDefault("MONDAY_COL_PALLETS", "numeric_mkz4s8sc")
	viper.SetDefault("MONDAY_COL_ORDER", "text_mkz4n5dn")

	viper.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022")
	viper.SetDefault("ANTHROPIC_MAX_TOKENS", 500)

	viper.SetDefault("TIMELINES_BASE_URL", "https://app.timelines.ai/integrations/api")

	viper.SetDefault("DELIVERIES_RECIPIENTS", "אוהד:972528012869")
	viper.SetDefault("UNINVOICED_RECIPIENTS", "אוהד:972528012869")
	viper.SetDefault("CONTAINERS_RECIPIENTS", "יובל:972505267110,אוהד:972528012869")
	viper.SetDefault("DIGEST_RECIPIENTS", "אוהד:972528012869")

	viper.SetDefault("DELIVERIES_DRIVER_LABELS", "0:שי,1:אורי,2:נהג 3,3:נהג 4")
	viper.SetDefault("DELIVERIES_DRIVER_COLORS", "שי:E8F4FD,אורי:FFF3E8,נהג 3:E8FDE8,נהג 4:F8E8FD")
	viper.SetDefault("UNINVOICED_STATUS_COLORS", "ת. לאוברסיז:FFF2CC,סופית:E2EFDA,ממתין לחן:FCE4D6")

	viper.SetDefault("UNINVOICED_LOOKBACK_DAYS", 90)

	// reportd schedules, Israel local time
	viper.SetDefault("DELIVERIES_CRON", "30 7 * * *")
	viper.SetDefault("DELIVERIES_ENABLED", false)
	viper.SetDefault("UNINVOICED_CRON", "0 7 * * *")
	viper.SetDefault("UNINVOICED_ENABLED", false)
	viper.SetDefault("CONTAINERS_CRON", "15 7 * * *")
	viper.SetDefault("CONTAINERS_ENABLED", false)
	viper.SetDefault("DIGEST_CRON", "5 8 * * *")
	viper.SetDefault("DIGEST_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("no .env readable by viper, relying on environment: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads a .env for local runs; in CI the variables come from the
// runner environment and every location here may be absent.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("loaded env file from ", location)
			return
		}
	}
}

// Require verifies that the listed env-backed fields are non-empty. Missing
// required configuration is the only hard failure mode: callers Fatal on it.
func Require(pairs map[string]string) error {
	missing := make([]string, 0)
	for name, value := range pairs {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseRecipients turns "name:phone,name:phone" into delivery targets.
// Entries without a colon are treated as a bare phone number.
func ParseRecipients(list string) []domain.DeliveryTarget {
	targets := make([]domain.DeliveryTarget, 0)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, phone, found := strings.Cut(entry, ":")
		if !found {
			targets = append(targets, domain.DeliveryTarget{Phone: name})
			continue
		}
		targets = append(targets, domain.DeliveryTarget{Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone)})
	}
	return targets
}

// ParseIndexLabels turns "0:label,1:label" into a status-index lookup table.
func ParseIndexLabels(list string) map[int]string {
	labels := make(map[int]string)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		rawIndex, label, found := strings.Cut(entry, ":")
		if !found {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
		if err != nil {
			continue
		}
		labels[index] = strings.TrimSpace(label)
	}
	return labels
}

// ParseLabelColors turns "label:RRGGBB,label:RRGGBB" into a palette.
func ParseLabelColors(list string) map[string]string {
	colors := make(map[string]string)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		label, color, found := strings.Cut(entry, ":")
		if !found {
			continue
		}
		colors[strings.TrimSpace(label)] = strings.TrimSpace(color)
	}
	return colors
}
