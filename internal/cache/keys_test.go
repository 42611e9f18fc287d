package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "session",
			objectType:  "state",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "restaurantquiz:session:state:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "session",
			objectType:  "state",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "restaurantquiz:session:state:123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "catalog",
			objectType:  "restaurant",
			identifier:  "abc",
			paramsKey:   []string{"v2"},
			expectedKey: "restaurantquiz:catalog:restaurant:abc:v2",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "catalog",
			objectType:  "restaurant",
			identifier:  "xyz",
			paramsKey:   []string{"param1", "param2", "param3"},
			expectedKey: "restaurantquiz:catalog:restaurant:xyz:param1_param2_param3",
		},
		{
			name:        "with paramsKey containing special characters",
			serviceName: "service",
			objectType:  "type",
			identifier:  "id",
			paramsKey:   []string{"param-1", "param_2"},
			expectedKey: "restaurantquiz:service:type:id:param-1_param_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestNamedKeys(t *testing.T) {
	if got := SessionStateKey("01HX"); got != "restaurantquiz:session:state:01HX" {
		t.Errorf("SessionStateKey() = %v", got)
	}
	if got := CatalogKey("r1"); got != "restaurantquiz:catalog:restaurant:r1" {
		t.Errorf("CatalogKey() = %v", got)
	}
}
