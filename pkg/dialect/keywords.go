package dialect

const (
	r  = Reserved
	f  = Function
	d  = DataType
	k  = Key
	rf = Reserved | Function
	rd = Reserved | DataType
)

// keywords is the MySQL keyword table. Compound keywords are written with a
// single space between words; the Compound flag is added at init.
var keywords = map[string]KeywordFlag{
	// Reserved words.
	"ACCESSIBLE": r, "ADD": r, "ALL": r, "ALTER": r, "ANALYZE": r, "AND": r, "AS": r, "ASC": r,
	"ASENSITIVE": r, "BEFORE": r, "BETWEEN": r, "BOTH": r, "BY": r, "CALL": r, "CASCADE": r, "CASE": r,
	"CHANGE": r, "CHECK": r, "COLLATE": r, "COLUMN": r, "CONDITION": r, "CONSTRAINT": r, "CONTINUE": r,
	"CREATE": r, "CROSS": r, "CUBE": r, "CURSOR": r, "DATABASES": r, "DAY_HOUR": r,
	"DAY_MICROSECOND": r, "DAY_MINUTE": r, "DAY_SECOND": r, "DECLARE": r, "DELAYED": r, "DELETE": r,
	"DESC": r, "DESCRIBE": r, "DETERMINISTIC": r, "DISTINCT": r, "DISTINCTROW": r, "DIV": r, "DROP": r,
	"DUAL": r, "EACH": r, "ELSE": r, "ELSEIF": r, "EMPTY": r, "ENCLOSED": r, "ESCAPED": r, "EXCEPT": r,
	"EXISTS": r, "EXIT": r, "EXPLAIN": r, "FETCH": r, "FOR": r, "FORCE": r, "FOREIGN": r | k, "FROM": r,
	"FULLTEXT": r | k, "GENERATED": r, "GET": r, "GRANT": r, "GROUP": r, "GROUPS": r, "HAVING": r,
	"HIGH_PRIORITY": r, "HOUR_MICROSECOND": r, "HOUR_MINUTE": r, "HOUR_SECOND": r, "IGNORE": r, "IN": r,
	"INDEX": r | k, "INFILE": r, "INNER": r, "INOUT": r, "INSENSITIVE": r, "INTERSECT": r,
	"INTERVAL": r, "INTO": r, "IO_AFTER_GTIDS": r, "IO_BEFORE_GTIDS": r, "IS": r, "ITERATE": r,
	"JOIN": r, "JSON_TABLE": rf, "KEY": r | k, "KEYS": r, "KILL": r, "LATERAL": r, "LEADING": r,
	"LEAVE": r, "LIKE": r, "LIMIT": r, "LINEAR": r, "LINES": r, "LOAD": r, "LOCK": r, "LOOP": r,
	"LOW_PRIORITY": r, "MASTER_BIND": r, "MASTER_SSL_VERIFY_SERVER_CERT": r, "MATCH": rf, "MAXVALUE": r,
	"MINUTE_MICROSECOND": r, "MINUTE_SECOND": r, "MODIFIES": r, "NATURAL": r, "NOT": r,
	"NO_WRITE_TO_BINLOG": r, "NULL": r, "OF": r, "ON": r, "OPTIMIZE": r, "OPTIMIZER_COSTS": r,
	"OPTION": r, "OPTIONALLY": r, "OR": r, "ORDER": r, "OUT": r, "OUTER": r, "OUTFILE": r, "OVER": r,
	"PARTITION": r, "PRIMARY": r | k, "PROCEDURE": r, "PURGE": r, "RANGE": r, "READ": r, "READS": r,
	"READ_WRITE": r, "RECURSIVE": r, "REFERENCES": r, "REGEXP": r, "RELEASE": r, "RENAME": r,
	"REQUIRE": r, "RESIGNAL": r, "RESTRICT": r, "RETURN": r, "REVOKE": r, "RLIKE": r, "ROWS": r,
	"SCHEMAS": r, "SECOND_MICROSECOND": r, "SELECT": r, "SENSITIVE": r, "SEPARATOR": r, "SET": r | d,
	"SHOW": r, "SIGNAL": r, "SPATIAL": r | k, "SPECIFIC": r, "SQL": r, "SQLEXCEPTION": r, "SQLSTATE": r,
	"SQLWARNING": r, "SQL_BIG_RESULT": r, "SQL_CALC_FOUND_ROWS": r, "SQL_SMALL_RESULT": r, "SSL": r,
	"STARTING": r, "STORED": r, "STRAIGHT_JOIN": r, "SYSTEM": r, "TABLE": r, "TERMINATED": r,
	"THEN": r, "TO": r, "TRAILING": r, "TRIGGER": r, "UNDO": r, "UNION": r, "UNIQUE": r | k,
	"UNLOCK": r, "UNSIGNED": r, "UPDATE": r, "USAGE": r, "USE": r, "USING": r, "VALUES": rf,
	"VARYING": r, "VIRTUAL": r, "WHEN": r, "WHERE": r, "WHILE": r, "WINDOW": r, "WITH": r,
	"WRITE": r, "XOR": r, "YEAR_MONTH": r, "ZEROFILL": r,

	// Reserved words that are also functions.
	"CHARACTER": r, "CONVERT": rf, "CUME_DIST": rf, "CURRENT_DATE": rf, "CURRENT_TIME": rf,
	"CURRENT_TIMESTAMP": rf, "CURRENT_USER": rf, "DATABASE": rf, "DEFAULT": rf, "DENSE_RANK": rf,
	"FIRST_VALUE": rf, "GROUPING": rf, "IF": rf, "INSERT": rf, "LAG": rf, "LAST_VALUE": rf, "LEAD": rf,
	"LEFT": rf, "LOCALTIME": rf, "LOCALTIMESTAMP": rf, "MOD": rf, "NTH_VALUE": rf, "NTILE": rf,
	"PERCENT_RANK": rf, "RANK": rf, "REPEAT": rf, "REPLACE": rf, "RIGHT": rf, "ROW": rf,
	"ROW_NUMBER": rf, "SCHEMA": rf, "UTC_DATE": rf, "UTC_TIME": rf, "UTC_TIMESTAMP": rf,

	// Reserved data types.
	"BIGINT": rd, "BINARY": rd | Function, "BLOB": rd, "CHAR": rd | Function, "DEC": rd, "DECIMAL": rd,
	"DOUBLE": rd, "FLOAT": rd, "FLOAT4": rd, "FLOAT8": rd, "INT": rd, "INT1": rd, "INT2": rd, "INT3": rd,
	"INT4": rd, "INT8": rd, "INTEGER": rd, "LONG": rd, "LONGBLOB": rd, "LONGTEXT": rd, "MEDIUMBLOB": rd,
	"MEDIUMINT": rd, "MEDIUMTEXT": rd, "MIDDLEINT": rd, "NUMERIC": rd, "PRECISION": r, "REAL": rd,
	"SMALLINT": rd, "TINYBLOB": rd, "TINYINT": rd, "TINYTEXT": rd, "VARBINARY": rd, "VARCHAR": rd,
	"VARCHARACTER": rd,

	// Non-reserved data types.
	"BIT": d, "BOOL": d, "BOOLEAN": d, "DATE": d | f, "DATETIME": d, "ENUM": d, "FIXED": d,
	"GEOMETRY": d, "GEOMETRYCOLLECTION": d, "JSON": d, "LINESTRING": d, "MULTILINESTRING": d,
	"MULTIPOINT": d, "MULTIPOLYGON": d, "NCHAR": d, "NVARCHAR": d, "POINT": d | f, "POLYGON": d | f,
	"SERIAL": d, "TEXT": d, "TIME": d | f, "TIMESTAMP": d | f, "YEAR": d | f,

	// Non-reserved functions.
	"ABS": f, "AVG": f, "CAST": f, "CEIL": f, "CEILING": f, "COALESCE": f, "CONCAT": f, "CONCAT_WS": f,
	"COUNT": f, "CURDATE": f, "CURTIME": f, "DATE_ADD": f, "DATE_FORMAT": f, "DATE_SUB": f,
	"DATEDIFF": f, "DAY": f, "EXTRACT": f, "FIELD": f, "FIND_IN_SET": f, "FLOOR": f, "FORMAT": f,
	"FROM_UNIXTIME": f, "GREATEST": f, "GROUP_CONCAT": f, "HOUR": f, "IFNULL": f, "INSTR": f,
	"ISNULL": f, "JSON_ARRAY": f, "JSON_EXTRACT": f, "JSON_OBJECT": f, "JSON_UNQUOTE": f, "LAST_INSERT_ID": f,
	"LEAST": f, "LENGTH": f, "LOCATE": f, "LOWER": f, "LPAD": f, "LTRIM": f, "MAX": f, "MD5": f,
	"MIN": f, "MINUTE": f, "MONTH": f, "NOW": f, "NULLIF": f, "POSITION": f, "POW": f, "POWER": f,
	"RAND": f, "ROUND": f, "RPAD": f, "RTRIM": f, "SECOND": f, "SHA1": f, "SHA2": f, "SIGN": f,
	"SQRT": f, "STD": f, "STDDEV": f, "STR_TO_DATE": f, "SUBSTR": f, "SUBSTRING": f,
	"SUBSTRING_INDEX": f, "SUM": f, "SYSDATE": f, "TIMESTAMPDIFF": f, "TRIM": f, "TRUNCATE": f,
	"UNIX_TIMESTAMP": f, "UPPER": f, "UUID": f, "VARIANCE": f, "WEEK": f,

	// Non-reserved words that drive statement and option grammars.
	"ACTION": 0, "AFTER": 0, "AGAINST": 0, "ALGORITHM": 0, "AUTO_INCREMENT": 0, "AVG_ROW_LENGTH": 0,
	"BEGIN": 0, "BTREE": 0, "CASCADED": 0, "CHARSET": 0, "CHECKSUM": 0, "COLUMNS": 0, "COMMENT": 0,
	"COMMIT": 0, "COMPRESSION": 0, "CONNECTION": 0, "DATA": 0, "DEFINER": 0, "DELAY_KEY_WRITE": 0,
	"DIRECTORY": 0, "DISABLE": 0, "DISCARD": 0, "DUMPFILE": 0, "DUPLICATE": 0, "ENABLE": 0, "END": 0,
	"ENGINE": 0, "ENGINES": 0, "ESCAPE": 0, "EVENT": 0, "EXTENDED": 0, "FIELDS": 0, "FIRST": 0,
	"FULL": 0, "GLOBAL": 0, "HASH": 0, "IMPORT": 0, "INDEXES": 0, "INSERT_METHOD": 0, "INVISIBLE": 0,
	"INVOKER": 0, "KEY_BLOCK_SIZE": 0, "LOCAL": 0, "MAX_ROWS": 0, "MEDIUM": 0, "MERGE": 0,
	"MIN_ROWS": 0, "MODE": 0, "MODIFY": 0, "NO": 0, "OFFSET": 0, "OPEN": 0, "PACK_KEYS": 0,
	"PARSER": 0, "PARTIAL": 0, "PASSWORD": 0, "PERSIST": 0, "PROCESSLIST": 0, "QUICK": 0,
	"ROLLBACK": 0, "ROLLUP": 0, "ROW_FORMAT": 0, "SAVEPOINT": 0, "SECURITY": 0, "SESSION": 0,
	"SHARE": 0, "SIMPLE": 0, "SQL_BUFFER_RESULT": 0, "SQL_CACHE": 0, "SQL_NO_CACHE": 0,
	"START": 0, "STATS_AUTO_RECALC": 0, "STATS_PERSISTENT": 0, "STATS_SAMPLE_PAGES": 0,
	"STATUS": 0, "STORAGE": 0, "TABLES": 0, "TABLESPACE": 0, "TEMPORARY": 0, "TEMPTABLE": 0,
	"TRANSACTION": 0, "TRIGGERS": 0, "UNDEFINED": 0, "VARIABLES": 0, "VIEW": 0, "VISIBLE": 0,
	"REPAIR": 0, "WARNINGS": 0, "WORK": 0, "ERRORS": 0, "FUNCTION": 0,

	// Compound keywords.
	"CHARACTER SET": r, "CHARACTER VARYING": rd, "COLLATION": 0,
	"CROSS JOIN": r, "DEFAULT CHARACTER SET": r, "DEFAULT CHARSET": r, "DEFAULT COLLATE": r,
	"DOUBLE PRECISION": rd, "FOR UPDATE": r, "FOREIGN KEY": r | k, "FULL JOIN": r,
	"FULL OUTER JOIN": r, "FULLTEXT INDEX": r | k, "FULLTEXT KEY": r | k, "GENERATED ALWAYS": r,
	"GROUP BY": r, "IF EXISTS": r, "IF NOT EXISTS": r, "INNER JOIN": r, "INTO DUMPFILE": r,
	"INTO OUTFILE": r, "LEFT JOIN": r, "LEFT OUTER JOIN": r, "LOCK IN SHARE MODE": r,
	"NATURAL JOIN": r, "NATURAL LEFT JOIN": r, "NATURAL LEFT OUTER JOIN": r,
	"NATURAL RIGHT JOIN": r, "NATURAL RIGHT OUTER JOIN": r, "NO ACTION": r, "NOT NULL": r,
	"ON DELETE": r, "ON DUPLICATE KEY UPDATE": r, "ON UPDATE": r, "OR REPLACE": r, "ORDER BY": r,
	"PARTITION BY": r, "PRIMARY KEY": r | k, "RIGHT JOIN": r, "RIGHT OUTER JOIN": r,
	"SET DEFAULT": r, "SET NULL": r, "SPATIAL INDEX": r | k, "SPATIAL KEY": r | k,
	"START TRANSACTION": r, "UNION ALL": r, "UNION DISTINCT": r,
	"UNIQUE INDEX": r | k, "UNIQUE KEY": r | k, "WITH ROLLUP": r, "WITH PARSER": r,
	"TERMINATED BY": r, "ENCLOSED BY": r, "OPTIONALLY ENCLOSED BY": r, "ESCAPED BY": r,
	"STARTING BY": r, "SQL SECURITY DEFINER": r, "SQL SECURITY INVOKER": r,
}

// statementStarters lists the keywords that begin a statement.
var statementStarters = map[string]struct{}{
	"ALTER": {}, "ANALYZE": {}, "BEGIN": {}, "CALL": {}, "CHECK": {}, "CHECKSUM": {}, "COMMIT": {},
	"CREATE": {}, "DELETE": {}, "DESC": {}, "DESCRIBE": {}, "DROP": {}, "EXPLAIN": {}, "INSERT": {},
	"OPTIMIZE": {}, "RENAME": {}, "REPAIR": {}, "REPLACE": {}, "ROLLBACK": {}, "SELECT": {},
	"SET": {}, "SHOW": {}, "START TRANSACTION": {}, "TRUNCATE": {}, "UPDATE": {}, "USE": {},
}
