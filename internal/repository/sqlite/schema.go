package sqlite

// Table names
const (
	tableCities         = "cities"
	tableNeighborhoods  = "neighborhoods"
	tableStreets        = "streets"
	tablePoliceStations = "police_stations"
)

// schema declares the four collections. Foreign keys carry no ON DELETE
// action: the repositories delete or detach dependents themselves and SQLite
// rejects any delete that would leave a dangling reference.
//
// Uniqueness treats an absent state, country or city as a value of its own,
// so two cities named alike with no state and no country collide.
const schema = `
CREATE TABLE IF NOT EXISTS cities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	state TEXT,
	country TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_city_name_state_country
	ON cities(name, IFNULL(state, ''), IFNULL(country, ''));
CREATE INDEX IF NOT EXISTS ix_city_name ON cities(name);

CREATE TABLE IF NOT EXISTS neighborhoods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	city_id INTEGER NOT NULL REFERENCES cities(id),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	CONSTRAINT uq_neighborhood_name_city UNIQUE (name, city_id)
);

CREATE INDEX IF NOT EXISTS ix_neighborhood_name ON neighborhoods(name);
CREATE INDEX IF NOT EXISTS ix_neighborhood_city ON neighborhoods(city_id);

CREATE TABLE IF NOT EXISTS streets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	neighborhood_id INTEGER NOT NULL REFERENCES neighborhoods(id),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	CONSTRAINT uq_street_name_neighborhood UNIQUE (name, neighborhood_id)
);

CREATE INDEX IF NOT EXISTS ix_street_name ON streets(name);
CREATE INDEX IF NOT EXISTS ix_street_neighborhood ON streets(neighborhood_id);

CREATE TABLE IF NOT EXISTS police_stations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	city_id INTEGER REFERENCES cities(id),
	address TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_police_station_name_city
	ON police_stations(name, IFNULL(city_id, 0));
CREATE INDEX IF NOT EXISTS ix_police_station_name ON police_stations(name);
CREATE INDEX IF NOT EXISTS ix_police_station_city ON police_stations(city_id);
`
